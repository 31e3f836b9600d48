package files

import (
	"context"

	"fileshare/internal/domain"
	"fileshare/internal/modules/activity"
)

type FileRepositoryInterface interface {
	Create(ctx context.Context, f *domain.File) error
	GetByID(ctx context.Context, id int64) (*domain.File, error)
	ListAll(ctx context.Context) ([]*domain.File, error)
	DeleteCascade(ctx context.Context, id int64) error
	IncrementDownloadCount(ctx context.Context, id int64) error
}

// Authorizer is the access module's download decision.
type Authorizer interface {
	AuthorizeDownload(ctx context.Context, user *domain.User, fileID int64) (*domain.File, error)
}

// EventPublisher pushes catalog activity to connected admin dashboards.
type EventPublisher interface {
	Broadcast(evt activity.Event)
}
