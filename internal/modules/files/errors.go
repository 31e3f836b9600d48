package files

import "errors"

var (
	ErrFileNotFound = errors.New("file not found")
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)
