package repository

import (
	"context"

	"gorm.io/gorm"

	"fileshare/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*u = *toDomainUser(m)
	return nil
}

// GetByUsername looks up by the username exactly as stored (case-sensitive).
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Where("username = ?", username).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("username = ?", username).Count(&count)
	return count > 0, tx.Error
}

func (r *UserRepository) ExistsAdmin(ctx context.Context) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&userModel{}).Where("is_admin = ?", true).Count(&count)
	return count > 0, tx.Error
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	var models []userModel
	tx := r.db.WithContext(ctx).Order("id").Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}
	users := make([]*domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, toDomainUser(m))
	}
	return users, nil
}
