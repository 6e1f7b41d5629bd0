package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	MemberID uuid.UUID
	Nickname string
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients. The token is
// the opaque caller credential: downstream code only ever sees the resolved
// MemberID.
type AccessTokenClaims struct {
	MemberID uuid.UUID `json:"member_id"`
	Nickname string    `json:"nickname,omitempty"`
	jwt.RegisteredClaims
}
