package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fileshare/internal/domain"
	"fileshare/internal/modules/access"
	"fileshare/internal/modules/activity"
	"fileshare/internal/pkg/logger"
)

const DefaultUploadDir = "./uploads"

// Service owns file metadata and the bytes on disk.
// Upload order is bytes first, metadata second: a failed insert removes
// the bytes again, so a committed row always points at a readable file.
type Service struct {
	repo       FileRepositoryInterface
	authorizer Authorizer
	events     EventPublisher
	baseDir    string
	maxSize    int64
}

func NewService(repo FileRepositoryInterface, authorizer Authorizer, events EventPublisher, baseDir string, maxSize int64) *Service {
	if baseDir == "" {
		baseDir = DefaultUploadDir
	}
	return &Service{
		repo:       repo,
		authorizer: authorizer,
		events:     events,
		baseDir:    baseDir,
		maxSize:    maxSize,
	}
}

// Upload streams the request body to disk and records the metadata row.
func (s *Service) Upload(ctx context.Context, actor *domain.User, originalName string, r io.Reader, size int64) (*domain.File, error) {
	if size == 0 {
		return nil, ErrEmptyFile
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	// uuid prefix keeps concurrent uploads of the same name apart.
	display := sanitizeFilename(originalName)
	stored := fmt.Sprintf("%s_%s", uuid.NewString(), display)
	absPath := filepath.Join(s.baseDir, stored)

	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	file := &domain.File{
		Filename:    display,
		StoragePath: absPath,
		UploadedAt:  time.Now(),
	}
	if err := s.repo.Create(ctx, file); err != nil {
		_ = os.Remove(absPath) // roll back bytes on DB error
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	s.publish(activity.NewEvent(activity.EventFileUploaded, file.ID, file.Filename, actor.Username))
	return file, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.File, error) {
	file, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *Service) ListAll(ctx context.Context) ([]*domain.File, error) {
	return s.repo.ListAll(ctx)
}

// Delete removes the metadata row and its grants transactionally, then
// unlinks the bytes best-effort. A download that already resolved the row
// may still be streaming; that window is tolerated.
func (s *Service) Delete(ctx context.Context, actor *domain.User, id int64) error {
	file, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFileNotFound
		}
		return err
	}

	if err := os.Remove(file.StoragePath); err != nil && !os.IsNotExist(err) {
		logger.L().Warn("failed to remove stored bytes",
			zap.Int64("file_id", id),
			zap.String("path", file.StoragePath),
			zap.Error(err),
		)
	}

	s.publish(activity.NewEvent(activity.EventFileDeleted, file.ID, file.Filename, actor.Username))
	return nil
}

// Download runs the authorization decision and, on success, bumps the
// counter exactly once. The returned metadata carries the storage path
// for the handler to stream.
func (s *Service) Download(ctx context.Context, user *domain.User, id int64) (*domain.File, error) {
	file, err := s.authorizer.AuthorizeDownload(ctx, user, id)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrFileNotFound):
			return nil, ErrFileNotFound
		case errors.Is(err, access.ErrAccessDenied):
			return nil, access.ErrAccessDenied
		}
		return nil, err
	}

	if err := s.repo.IncrementDownloadCount(ctx, id); err != nil {
		return nil, err
	}

	s.publish(activity.NewEvent(activity.EventFileDownloaded, file.ID, file.Filename, user.Username))
	return file, nil
}

func (s *Service) publish(evt activity.Event) {
	if s.events != nil {
		s.events.Broadcast(evt)
	}
}

// sanitizeFilename strips any path component and everything outside a
// conservative character set, keeping the stored display name safe.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
			r == '.' || r == '_' || r == '-' {
			return r
		}
		return -1
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
