package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/user"
	"github.com/loomhr/workforce-backend-go/internal/handler/http/response"
)

func requireRole(required user.Role, deniedErr error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, deniedErr)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, deniedErr)
				return
			}

			role := user.Role(roleStr)
			if !role.Valid() || !role.AtLeast(required) {
				response.HandleError(w, deniedErr)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwner requires owner role
var RequireOwner = requireRole(user.RoleOwner, user.ErrOwnerAccessRequired)

// RequireManager requires manager or owner role
var RequireManager = requireRole(user.RoleManager, user.ErrManagerAccessRequired)
