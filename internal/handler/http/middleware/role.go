package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workhive-crm/crm-backend-go/internal/domain/user"
	"github.com/workhive-crm/crm-backend-go/internal/handler/http/response"
)

// RequireManager requires manager or founder role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		if !user.Role(roleStr).IsManager() {
			response.HandleError(w, user.ErrManagerAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireFounder requires founder role
func RequireFounder(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrFounderAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrFounderAccessRequired)
			return
		}

		if !user.Role(roleStr).IsFounder() {
			response.HandleError(w, user.ErrFounderAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
