package auth

import (
	"github.com/clubmate-app/clubmate-backend/internal/members"
)

// RegisterRequest contains the payload for creating a member account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Nickname string `json:"nickname" validate:"required,min=2,max=32"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest captures the member credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token paired with the expired access token.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenResponse contains the token pair and member produced by a successful
// login or refresh.
type TokenResponse struct {
	AccessToken  string             `json:"access_token"`
	RefreshToken string             `json:"refresh_token"`
	Member       *members.MemberDTO `json:"member,omitempty"`
}
