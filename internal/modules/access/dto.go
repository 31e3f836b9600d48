package access

type GrantRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
	FileID int64 `json:"file_id" binding:"required"`
}

type GrantResponse struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	FileID int64 `json:"file_id"`
}
