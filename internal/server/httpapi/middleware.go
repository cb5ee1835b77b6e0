package httpapi

import (
	"context"
	"net/http"
	"strings"

	"flax/internal/common"
	"flax/internal/server/auth"
)

type ctxKey int

const userIDKey ctxKey = iota

// userID returns the session user id placed by the bearer middleware.
func userID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// withUser authenticates the request from the Authorization bearer token
// and stores the user id in the request context. The user itself is
// re-resolved by every service call, since the document may change between
// requests.
func (a *API) withUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const prefix = "Bearer "
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, prefix) {
			writeError(w, common.ErrUnauthorized)
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		if token == "" {
			writeError(w, common.ErrUnauthorized)
			return
		}

		id, err := auth.GetUserIDFromToken(token, a.secretKey)
		if err != nil {
			writeError(w, err)
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	}
}

// withAdmin verifies the raw admin password header on every call. There is
// no admin session to hijack or expire.
func (a *API) withAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		password := r.Header.Get(common.AdminPasswordHeaderName)
		if err := a.admin.Verify(r.Context(), password); err != nil {
			writeError(w, err)
			return
		}
		next(w, r)
	}
}
