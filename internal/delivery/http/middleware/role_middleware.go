package middleware

import (
	"net/http"

	"bloodbank-backend/internal/domain/entity"
	"bloodbank-backend/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			allowed := false
			for _, allowedRole := range allowedRoles {
				if role == allowedRole {
					allowed = true
					break
				}
			}

			if !allowed {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

// RequireDonor is a convenience middleware for donor-only endpoints
func RequireDonor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDonor)(next)
}

// RequireBloodbank restricts to blood bank owner accounts
func RequireBloodbank(next http.Handler) http.Handler {
	return RequireRole(entity.RoleBloodbank)(next)
}

// RequireBloodbankStaff allows the blood bank owner plus every staff role
func RequireBloodbankStaff(next http.Handler) http.Handler {
	roles := append([]string{entity.RoleBloodbank}, entity.StaffRoles...)
	return RequireRole(roles...)(next)
}
