package auth

import (
	"context"

	"fileshare/internal/domain"
)

// UserRepositoryInterface — only the methods the auth service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsAdmin(ctx context.Context) (bool, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}
