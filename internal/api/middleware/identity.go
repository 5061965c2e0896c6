package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kairovix/labsched/internal/api/handlers"
	"github.com/kairovix/labsched/internal/domain"
)

// Headers installed by the upstream authenticator. The service trusts them
// and performs no credential verification itself.
const (
	HeaderUserEmail = "X-User-Email"
	HeaderUserLab   = "X-User-Lab"
	HeaderUserAdmin = "X-User-Admin"
)

type identityCtxKey struct{}

// Identity requires the authenticator headers and stores the resulting
// identity value in the request context
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.Header.Get(HeaderUserEmail))
		if email == "" {
			handlers.RespondUnauthorized(w, "missing "+HeaderUserEmail+" header")
			return
		}

		admin := r.Header.Get(HeaderUserAdmin)
		identity := domain.Identity{
			Email:   email,
			Lab:     strings.TrimSpace(r.Header.Get(HeaderUserLab)),
			IsAdmin: admin == "true" || admin == "1",
		}

		ctx := context.WithValue(r.Context(), identityCtxKey{}, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFrom returns the identity stored by the Identity middleware
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityCtxKey{}).(domain.Identity)
	return identity, ok
}
