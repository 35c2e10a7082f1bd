package dto

import "mime/multipart"

// RegisterRequest carries the multipart signup form; avatar is mandatory,
// cover image optional.
type RegisterRequest struct {
	FullName   string                `form:"fullName" binding:"required"`
	Email      string                `form:"email" binding:"required,email"`
	Username   string                `form:"username" binding:"required"`
	Password   string                `form:"password" binding:"required"`
	Avatar     *multipart.FileHeader `form:"avatar" binding:"required"`
	CoverImage *multipart.FileHeader `form:"coverImage"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// TokenPair is the login/refresh response payload.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
