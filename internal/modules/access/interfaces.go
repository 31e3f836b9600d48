package access

import (
	"context"

	"fileshare/internal/domain"
)

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type FileReader interface {
	GetByID(ctx context.Context, id int64) (*domain.File, error)
	ListAll(ctx context.Context) ([]*domain.File, error)
}

type GrantRepositoryInterface interface {
	Create(ctx context.Context, g *domain.AccessGrant) error
	HasAccess(ctx context.Context, userID, fileID int64) (bool, error)
	ListFilesForUser(ctx context.Context, userID int64) ([]*domain.File, error)
}
