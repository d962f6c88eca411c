// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "notes_backend/internal/feature/auth/domain/entity"

// RegisterReq represents the request body for POST /auth/register.
type RegisterReq struct {
	Email    string `json:"email" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

// LoginReq represents the request body for POST /auth/login.
// Fields are not required here; missing values fail as invalid credentials.
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRes is the public view of a user. The password hash is never included.
type UserRes struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// RegisterRes is returned with 201 on successful registration.
type RegisterRes struct {
	Message string  `json:"message"`
	User    UserRes `json:"user"`
}

// LoginRes is returned with 200 on successful login.
type LoginRes struct {
	AccessToken string  `json:"access_token"`
	User        UserRes `json:"user"`
}

// ToUserRes converts a user entity to its public view.
func ToUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Email: u.Email}
}
