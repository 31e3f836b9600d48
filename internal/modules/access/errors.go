package access

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrFileNotFound = errors.New("file not found")
	ErrAccessDenied = errors.New("access denied")
)
