package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// Operator roles.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// OperatorClaims are the claims carried by operator tokens. Subject is the
// operator name.
type OperatorClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// CanRead reports whether the role may read stored plans.
func (c *OperatorClaims) CanRead() bool {
	return c.Role == RoleAdmin || c.Role == RoleViewer
}
