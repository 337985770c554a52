package auth

import "time"

type SignupRequest struct {
	Name        string `json:"name" binding:"required,notblank,min=1,max=20"`
	Email       string `json:"email" binding:"required,email,max=50"`
	PhoneNumber string `json:"phoneNumber" binding:"required,phone"`
	Password    string `json:"password" binding:"required,min=8,max=15"`
}

// SignupResponse echoes the audit timestamp so clients can show "member since"
type SignupResponse struct {
	ID        uint32    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=15"`
}

// LoginResponse is also returned by the refresh endpoint
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
