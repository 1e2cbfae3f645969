package util

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailRegistered  = errors.New("email already registered")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrCourseNotFound   = errors.New("course not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrDraftNotFound    = errors.New("draft not found")
	ErrInvalidVideoExt  = errors.New("unsupported video extension")
	ErrFileTooLarge     = errors.New("file exceeds the maximum allowed size")
	ErrInvalidFileType  = errors.New("file type not allowed")
)
