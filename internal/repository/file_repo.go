package repository

import (
	"context"

	"gorm.io/gorm"

	"fileshare/internal/domain"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, f *domain.File) error {
	m := toFileModel(f)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*f = *toDomainFile(m)
	return nil
}

func (r *FileRepository) GetByID(ctx context.Context, id int64) (*domain.File, error) {
	var m fileModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainFile(m), nil
}

func (r *FileRepository) ListAll(ctx context.Context) ([]*domain.File, error) {
	var models []fileModel
	tx := r.db.WithContext(ctx).Order("id").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	files := make([]*domain.File, 0, len(models))
	for _, m := range models {
		files = append(files, toDomainFile(m))
	}
	return files, nil
}

// DeleteCascade removes the metadata row together with every grant that
// references it, in one transaction. Grants must never outlive their file.
func (r *FileRepository) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id = ?", id).Delete(&grantModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&fileModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IncrementDownloadCount bumps the counter inside the database so
// concurrent downloads can never lose an update. No-op for absent ids.
func (r *FileRepository) IncrementDownloadCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&fileModel{}).
		Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).
		Error
}
