package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileSizeBoundary(t *testing.T) {
	max := int64(50)

	assert.NoError(t, ValidateFileSize(50*1024*1024, max), "exactly the limit is accepted")
	assert.ErrorIs(t, ValidateFileSize(50*1024*1024+1, max), ErrFileTooLarge, "one byte over is rejected")
	assert.NoError(t, ValidateFileSize(0, max))
}

func TestMimeAllowedWildcards(t *testing.T) {
	allowList := []string{"video/*", "application/pdf"}

	assert.True(t, MimeAllowed("video/mp4", allowList))
	assert.True(t, MimeAllowed("video/webm", allowList))
	assert.True(t, MimeAllowed("application/pdf", allowList))
	assert.False(t, MimeAllowed("image/png", allowList))
	assert.False(t, MimeAllowed("application/zip", allowList))
}

func TestMimeAllowedStripsParameters(t *testing.T) {
	assert.True(t, MimeAllowed("text/plain; charset=utf-8", []string{"text/*"}))
	assert.True(t, MimeAllowed("text/plain; charset=utf-8", []string{"text/plain"}))
}

func TestIsImageIsVideo(t *testing.T) {
	assert.True(t, IsImage("image/jpeg"))
	assert.False(t, IsImage("video/mp4"))
	assert.True(t, IsVideo("video/mp4"))
	assert.True(t, IsVideo("application/x-mpegURL"))
	assert.False(t, IsVideo("audio/mpeg"))
}
