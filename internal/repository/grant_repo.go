package repository

import (
	"context"

	"gorm.io/gorm"

	"fileshare/internal/domain"
)

type GrantRepository struct {
	db *gorm.DB
}

func NewGrantRepository(db *gorm.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

func (r *GrantRepository) Create(ctx context.Context, g *domain.AccessGrant) error {
	m := grantModel{
		UserID:    g.UserID,
		FileID:    g.FileID,
		CreatedAt: g.CreatedAt,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*g = *toDomainGrant(m)
	return nil
}

func (r *GrantRepository) HasAccess(ctx context.Context, userID, fileID int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).
		Model(&grantModel{}).
		Where("user_id = ? AND file_id = ?", userID, fileID).
		Count(&count)
	return count > 0, tx.Error
}

// ListFilesForUser returns every file the user holds at least one grant
// for. DISTINCT keeps duplicate grants from duplicating rows.
func (r *GrantRepository) ListFilesForUser(ctx context.Context, userID int64) ([]*domain.File, error) {
	var models []fileModel
	tx := r.db.WithContext(ctx).
		Model(&fileModel{}).
		Distinct("files.*").
		Joins("JOIN access_grants ON access_grants.file_id = files.id").
		Where("access_grants.user_id = ?", userID).
		Order("files.id").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	files := make([]*domain.File, 0, len(models))
	for _, m := range models {
		files = append(files, toDomainFile(m))
	}
	return files, nil
}
