package httpx

import (
	"errors"
	"net/http"

	"github.com/whirkplace/whirkplace-api/internal/domain/model"
	apperrors "github.com/whirkplace/whirkplace-api/internal/errors"
)

// ResolveOrganization is the tenancy boundary of the pipeline. For
// every non-public route it requires an authenticated identity, loads
// the organization that identity belongs to, rejects suspended or
// deleted tenants, and attaches the organization to the context. An
// identity with no organization flows through with an empty context
// and the handlers decide. The tenant is derived from the
// authenticated identity and nothing else; nothing in the URL,
// headers, or body can steer a request into another organization.
func ResolveOrganization(orgs OrganizationGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Classify(r.URL.Path).Public {
				next.ServeHTTP(w, r)
				return
			}

			result := GetAuthResult(r.Context())
			if !result.Authenticated() {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			// Identities without a tenant (platform operators, accounts
			// mid-signup) pass through with an empty org context; routes
			// that need a tenant reject later via requireOrg.
			if result.Identity.OrganizationID == "" {
				next.ServeHTTP(w, r)
				return
			}

			org, err := orgs.GetByID(r.Context(), result.Identity.OrganizationID)
			if err != nil {
				if apperrors.IsNotFound(err) {
					WriteError(w, ErrorParams{
						Code:    http.StatusForbidden,
						ErrCode: "organization_required",
						Err:     errors.New("organization no longer exists"),
					})
					return
				}
				RenderAppError(w, err)
				return
			}

			if org.Status != model.OrgStatusActive {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "organization_suspended",
					Err:     errors.New("organization is not active"),
				})
				return
			}

			ctx := SetOrganizationInContext(r.Context(), org)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireOrg fetches the resolved tenant for a handler, writing the
// error response itself when absent.
func requireOrg(w http.ResponseWriter, r *http.Request) (*model.Organization, bool) {
	org, ok := GetOrganizationFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "organization_required",
			Err:     errors.New("this endpoint requires an organization context"),
		})
		return nil, false
	}
	return org, true
}
