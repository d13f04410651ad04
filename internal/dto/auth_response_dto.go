package dto

import "time"

// LoginRequest defines the credentials payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ExchangeCodeRequest carries the Google authorization code from the frontend.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// AuthResponse is returned on successful login, refresh or OAuth exchange.
type AuthResponse struct {
	AccessToken          string        `json:"accessToken"`
	AccessTokenExpiresAt time.Time     `json:"accessTokenExpiresAt"`
	Staff                StaffResponse `json:"staff"`
}
