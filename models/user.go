package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an authenticated principal. The password hash never leaves the
// storage layer in responses.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// JwtClaims carries the user identity inside the signed token.
type JwtClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// CredentialsRequest is the body for both register and login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
