package httpx

import (
	"io"
	"net/http"
)

const healthResponse = `{"status":"ok","service":"whirkplace-api"}`

// healthHandler answers load balancer and uptime probes. It reports
// process liveness only; database and Redis health surface through
// request errors, not here.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Client connection is gone.
		return
	}
}
