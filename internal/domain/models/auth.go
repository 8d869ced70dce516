package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the bearer token payload. Vault tokens carry the username in
// sub; identity-provider tokens may add a role.
type Claims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Role                 string `json:"role,omitempty"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *Claims) GetUserID() string {
	return c.Subject
}
