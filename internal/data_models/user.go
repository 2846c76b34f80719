package dto

import (
	"time"

	model "todaygenda.com/todaygenda/internal/models"
)

// Credentials is the form body of the signup, register and token endpoints.
type Credentials struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Email     *string   `json:"email"`
	IsGuest   bool      `json:"is_guest"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		IsGuest:   user.IsGuest(),
		CreatedAt: user.CreatedAt,
	}
}
