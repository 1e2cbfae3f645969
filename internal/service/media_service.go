package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"learnspace_backend/internal/model"
	"learnspace_backend/internal/util"
	"learnspace_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Allow lists per upload endpoint. Detection is by content sniffing, not
// by the client-supplied extension, so a renamed executable still fails.
var (
	imageAllowList = []string{"image/*"}
	videoAllowList = []string{"video/*", "application/x-mpegURL", "application/octet-stream"}
	fileAllowList  = []string{
		"image/*", "video/*", "audio/*", "text/*",
		"application/pdf", "application/zip", "application/x-zip-compressed",
		"application/msword", "application/vnd.openxmlformats-officedocument",
		"application/vnd.ms-excel", "application/vnd.ms-powerpoint",
		"application/octet-stream",
	}
)

type MediaService struct {
	storage        *StorageService
	maxFileSizeMB  int64
	maxVideoSizeMB int64
	logger         *zap.Logger
}

func NewMediaService(storage *StorageService, maxFileSizeMB, maxVideoSizeMB int64, logger *zap.Logger) *MediaService {
	return &MediaService{
		storage:        storage,
		maxFileSizeMB:  maxFileSizeMB,
		maxVideoSizeMB: maxVideoSizeMB,
		logger:         logger,
	}
}

// SetLimits adjusts the size caps, used by config hot reload.
func (s *MediaService) SetLimits(maxFileSizeMB, maxVideoSizeMB int64) {
	s.maxFileSizeMB = maxFileSizeMB
	s.maxVideoSizeMB = maxVideoSizeMB
}

type VideoUploadResult struct {
	File            *model.StorageFile `json:"file"`
	DurationMinutes int                `json:"durationMinutes"`
	Width           int                `json:"width"`
	Height          int                `json:"height"`
}

type BatchUploadResult struct {
	Uploaded []*model.StorageFile `json:"uploaded"`
	Failed   map[string]string    `json:"failed,omitempty"` // filename -> reason
}

// UploadImage stores a cover or avatar image.
func (s *MediaService) UploadImage(ctx context.Context, fh *multipart.FileHeader, ownerID uint) (*model.StorageFile, error) {
	return s.upload(ctx, fh, "images", ownerID, imageAllowList, s.maxFileSizeMB)
}

// UploadAttachment stores a lesson-resource file.
func (s *MediaService) UploadAttachment(ctx context.Context, fh *multipart.FileHeader, ownerID uint) (*model.StorageFile, error) {
	return s.upload(ctx, fh, "resources", ownerID, fileAllowList, s.maxFileSizeMB)
}

// UploadAttachments stores several files sequentially. One bad file does
// not abort the batch; its failure is reported alongside the successes.
func (s *MediaService) UploadAttachments(ctx context.Context, fhs []*multipart.FileHeader, ownerID uint) *BatchUploadResult {
	result := &BatchUploadResult{Failed: make(map[string]string)}
	for _, fh := range fhs {
		file, err := s.UploadAttachment(ctx, fh, ownerID)
		if err != nil {
			result.Failed[fh.Filename] = err.Error()
			continue
		}
		result.Uploaded = append(result.Uploaded, file)
	}
	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result
}

// UploadVideo stores a lesson video and probes it for duration. The
// upload is spooled to a temp file because probing needs a local path.
func (s *MediaService) UploadVideo(ctx context.Context, fh *multipart.FileHeader, ownerID uint) (*VideoUploadResult, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !videoExtAllowed(ext) {
		return nil, util.ErrInvalidVideoExt
	}
	if err := util.ValidateFileSize(fh.Size, s.maxVideoSizeMB); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		return nil, err
	}

	mimeType, err := sniffFile(tmp, videoAllowList)
	if err != nil {
		return nil, util.ErrInvalidFileType
	}

	info, err := util.GetVideoInfo(tmp.Name())
	if err != nil {
		// A video the probe cannot read is still storable; the lesson
		// duration stays at zero until edited by hand.
		s.logger.Warn("video probe failed", zap.String("file", fh.Filename), zap.Error(err))
		info = &util.VideoInfo{}
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	key := buildKey("videos", ext)
	file, err := s.storage.Store(ctx, key, fh.Filename, tmp, fh.Size, mimeType, ownerID)
	if err != nil {
		return nil, err
	}
	monitoring.UploadBytes.Add(float64(fh.Size))

	return &VideoUploadResult{
		File:            file,
		DurationMinutes: info.DurationMinutes(),
		Width:           info.Width,
		Height:          info.Height,
	}, nil
}

func (s *MediaService) upload(ctx context.Context, fh *multipart.FileHeader, prefix string, ownerID uint, allowList []string, maxSizeMB int64) (*model.StorageFile, error) {
	if err := util.ValidateFileSize(fh.Size, maxSizeMB); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	mimeType, err := sniffFile(src, allowList)
	if err != nil {
		return nil, util.ErrInvalidFileType
	}

	key := buildKey(prefix, strings.ToLower(filepath.Ext(fh.Filename)))
	file, err := s.storage.Store(ctx, key, fh.Filename, src, fh.Size, mimeType, ownerID)
	if err != nil {
		return nil, err
	}
	monitoring.UploadBytes.Add(float64(fh.Size))
	return file, nil
}

// sniffFile detects the content type from the leading bytes and rewinds
// the reader so the full content is uploaded afterwards.
func sniffFile(f io.ReadSeeker, allowList []string) (string, error) {
	mimeType, err := util.ValidateMimeType(f, allowList)
	if err != nil {
		return mimeType, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return mimeType, err
	}
	return mimeType, nil
}

func buildKey(prefix, ext string) string {
	return fmt.Sprintf("%s/%d-%s%s", prefix, time.Now().UnixNano(), util.GenerateRandomString(8), ext)
}

func videoExtAllowed(ext string) bool {
	for _, allowed := range util.AllowedVideoExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
