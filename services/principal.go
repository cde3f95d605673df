package services

import (
	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"
)

// requireRole fails with Forbidden unless p holds one of roles.
func requireRole(p *auth.Principal, roles ...models.UserRole) error {
	if p == nil {
		return apperror.Auth("not authenticated")
	}
	for _, r := range roles {
		if p.Role == r {
			return nil
		}
	}
	return apperror.Forbidden("role " + string(p.Role) + " may not perform this operation")
}
