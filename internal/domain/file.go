package domain

import "time"

// File is catalog metadata for one stored blob. StoragePath is
// server-controlled and never exposed to clients.
type File struct {
	ID            int64     `json:"id"`
	Filename      string    `json:"filename"`
	StoragePath   string    `json:"-"`
	UploadedAt    time.Time `json:"uploaded_at"`
	DownloadCount int64     `json:"download_count"`
}

// AccessGrant authorizes one user to download one file. Duplicate
// grants for the same pair are allowed; reads use existence semantics.
type AccessGrant struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	FileID    int64     `json:"file_id"`
	CreatedAt time.Time `json:"created_at"`
}
