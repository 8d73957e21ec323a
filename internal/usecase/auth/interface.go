package auth

import (
	"context"

	domain "article-api/internal/domain/user"
)

// Service defines the interface for registration, login and bearer token resolution.
type Service interface {
	Register(ctx context.Context, in RegisterRequest) (*User, error)
	Login(ctx context.Context, in LoginRequest) (*User, error)
	Logout(ctx context.Context, u *domain.User) error
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

var _ Service = (*Usecase)(nil)
