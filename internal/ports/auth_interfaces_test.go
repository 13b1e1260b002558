package ports_test

import (
	"testing"

	mocks "github.com/whirkplace/whirkplace-api/internal/mocks/auth"
	"github.com/whirkplace/whirkplace-api/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.LoginProvider = (*mocks.MockLoginProvider)(nil)
	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
	var _ ports.DemoTokenStore = (*mocks.MemoryDemoTokenStore)(nil)
}
