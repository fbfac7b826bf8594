package user

import (
	"context"

	"board/internal/core/user"
)

// UserRepository stores board members. Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// DTOs
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expirationTime"`
}

type UserDTO struct {
	Username     string `json:"userId"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
}

func NewUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		Username:     u.Username,
		Nickname:     u.Nickname,
		ProfileImage: u.ProfileImage,
	}
}
