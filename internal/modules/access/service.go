package access

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"fileshare/internal/domain"
)

// Service is the authorization engine: it owns the grant relation and
// decides, per (identity, file) pair, whether a download may proceed.
type Service struct {
	users  UserReader
	files  FileReader
	grants GrantRepositoryInterface
}

func NewService(users UserReader, files FileReader, grants GrantRepositoryInterface) *Service {
	return &Service{users: users, files: files, grants: grants}
}

// Grant records that a user may download a file. Both sides must exist.
// Duplicate grants are permitted; they have no effect on authorization.
func (s *Service) Grant(ctx context.Context, userID, fileID int64) (*domain.AccessGrant, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.files.GetByID(ctx, fileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	grant := &domain.AccessGrant{
		UserID:    userID,
		FileID:    fileID,
		CreatedAt: time.Now(),
	}
	if err := s.grants.Create(ctx, grant); err != nil {
		return nil, err
	}
	return grant, nil
}

// ListAccessibleFiles returns what the caller is allowed to see: the full
// catalog for admins, the granted set for everyone else. Inaccessible
// files are absent entirely, not marked.
func (s *Service) ListAccessibleFiles(ctx context.Context, user *domain.User) ([]*domain.File, error) {
	if user.IsAdmin {
		return s.files.ListAll(ctx)
	}
	return s.grants.ListFilesForUser(ctx, user.ID)
}

func (s *Service) HasAccess(ctx context.Context, userID, fileID int64) (bool, error) {
	return s.grants.HasAccess(ctx, userID, fileID)
}

// AuthorizeDownload decides grant/deny for one download attempt.
// Admins bypass grants but still get ErrFileNotFound for absent ids.
// Non-admins get ErrAccessDenied for existing-but-ungranted files, so a
// denied file is distinguishable from a missing one.
func (s *Service) AuthorizeDownload(ctx context.Context, user *domain.User, fileID int64) (*domain.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}

	if user.IsAdmin {
		return file, nil
	}

	ok, err := s.grants.HasAccess(ctx, user.ID, fileID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}
	return file, nil
}
