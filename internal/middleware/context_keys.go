package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Role is the caller class carried in the JWT.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// Principal identifies the authenticated caller.
// CustomerID is only set for customer callers.
type Principal struct {
	ActorID    string
	Role       Role
	CustomerID string
}

// IsAdmin reports whether the caller may use admin operations.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// principalKey is the key used to store the authenticated principal in the request context.
const principalKey = contextKey("principal")

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipalFromContext retrieves the authenticated caller from the Gin request context.
// It returns the principal and a boolean indicating if it was found.
func GetPrincipalFromContext(c *gin.Context) (Principal, bool) {
	p, ok := c.Request.Context().Value(principalKey).(Principal)
	if !ok || p.ActorID == "" {
		return Principal{}, false
	}
	return p, true
}
