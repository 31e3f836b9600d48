package repository

import (
	"time"

	"gorm.io/gorm"

	"fileshare/internal/domain"
)

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	IsAdmin      bool      `gorm:"column:is_admin"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string { return "users" }

type fileModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Filename      string    `gorm:"column:filename"`
	StoragePath   string    `gorm:"column:storage_path"`
	UploadedAt    time.Time `gorm:"column:uploaded_at"`
	DownloadCount int64     `gorm:"column:download_count"`
}

func (fileModel) TableName() string { return "files" }

type grantModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;index"`
	FileID    int64     `gorm:"column:file_id;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (grantModel) TableName() string { return "access_grants" }

// AutoMigrate creates or updates the schema for every table the service
// owns. Row models stay unexported, so callers go through this helper.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &fileModel{}, &grantModel{})
}

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

func toDomainFile(m fileModel) *domain.File {
	return &domain.File{
		ID:            m.ID,
		Filename:      m.Filename,
		StoragePath:   m.StoragePath,
		UploadedAt:    m.UploadedAt,
		DownloadCount: m.DownloadCount,
	}
}

func toFileModel(f *domain.File) fileModel {
	return fileModel{
		ID:            f.ID,
		Filename:      f.Filename,
		StoragePath:   f.StoragePath,
		UploadedAt:    f.UploadedAt,
		DownloadCount: f.DownloadCount,
	}
}

func toDomainGrant(m grantModel) *domain.AccessGrant {
	return &domain.AccessGrant{
		ID:        m.ID,
		UserID:    m.UserID,
		FileID:    m.FileID,
		CreatedAt: m.CreatedAt,
	}
}
