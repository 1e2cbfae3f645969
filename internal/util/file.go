package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// ValidateMimeType sniffs the real content type from the first 512 bytes
// and checks it against the allow list. Entries may be exact types,
// prefixes ("image/"), or wildcard patterns ("video/*").
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	if MimeAllowed(mimeType, allowedTypes) {
		return mimeType, nil
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// MimeAllowed reports whether mimeType matches any entry of the allow
// list. "video/*" matches "video/mp4" but not "image/png".
func MimeAllowed(mimeType string, allowedTypes []string) bool {
	// detected types may carry parameters, e.g. "text/plain; charset=utf-8"
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	for _, allowed := range allowedTypes {
		if strings.HasSuffix(allowed, "/*") {
			if strings.HasPrefix(mimeType, strings.TrimSuffix(allowed, "*")) {
				return true
			}
			continue
		}
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return true
		}
	}
	return false
}

// ValidateFileSize accepts files up to and including maxSizeMB megabytes.
func ValidateFileSize(sizeBytes, maxSizeMB int64) error {
	if sizeBytes > maxSizeMB*1024*1024 {
		return ErrFileTooLarge
	}
	return nil
}

func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func IsVideo(mimeType string) bool {
	return strings.HasPrefix(mimeType, "video/") || mimeType == "application/x-mpegURL"
}
