package activity

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventFileUploaded   = "file.uploaded"
	EventFileDownloaded = "file.downloaded"
	EventFileDeleted    = "file.deleted"
)

// Event is one catalog mutation pushed to connected admin dashboards.
type Event struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	FileID   int64     `json:"file_id"`
	Filename string    `json:"filename"`
	Actor    string    `json:"actor"`
	At       time.Time `json:"at"`
}

func NewEvent(eventType string, fileID int64, filename, actor string) Event {
	return Event{
		ID:       uuid.NewString(),
		Type:     eventType,
		FileID:   fileID,
		Filename: filename,
		Actor:    actor,
		At:       time.Now(),
	}
}
