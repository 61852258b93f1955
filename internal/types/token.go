package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RolePatient is the only role allowed on the insight routes.
const RolePatient = "patient"

// TokenClaims represents the claims in a JWT token
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}
