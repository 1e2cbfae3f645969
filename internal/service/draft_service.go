package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"learnspace_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const draftKeyPrefix = "learnspace:course:draft:"

// DraftService keeps unsaved outline edits in Redis so an editor can
// close the tab and come back. Drafts carry a TTL; Redis expires them
// without any bookkeeping on our side.
type DraftService struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewDraftService(rdb *redis.Client, ttlHours int, logger *zap.Logger) *DraftService {
	return &DraftService{
		redis:  rdb,
		ttl:    time.Duration(ttlHours) * time.Hour,
		logger: logger,
	}
}

// SetTTL adjusts the draft lifetime, used by config hot reload. Already
// stored drafts keep their old expiry until re-saved.
func (s *DraftService) SetTTL(hours int) {
	s.ttl = time.Duration(hours) * time.Hour
}

type OutlineDraft struct {
	CourseID string        `json:"courseId"`
	Modules  []ModuleDraft `json:"modules"`
	SavedAt  time.Time     `json:"savedAt"`
}

// Save overwrites the draft for a course and resets its TTL.
func (s *DraftService) Save(ctx context.Context, courseID string, modules []ModuleDraft) (*OutlineDraft, error) {
	draft := OutlineDraft{
		CourseID: courseID,
		Modules:  modules,
		SavedAt:  time.Now(),
	}
	payload, err := json.Marshal(draft)
	if err != nil {
		return nil, err
	}
	if err := s.redis.Set(ctx, draftKeyPrefix+courseID, payload, s.ttl).Err(); err != nil {
		return nil, err
	}
	return &draft, nil
}

func (s *DraftService) Load(ctx context.Context, courseID string) (*OutlineDraft, error) {
	payload, err := s.redis.Get(ctx, draftKeyPrefix+courseID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, util.ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var draft OutlineDraft
	if err := json.Unmarshal(payload, &draft); err != nil {
		// A corrupt draft is unrecoverable, drop it.
		s.logger.Warn("discarding unreadable outline draft",
			zap.String("courseId", courseID), zap.Error(err))
		s.redis.Del(ctx, draftKeyPrefix+courseID)
		return nil, util.ErrDraftNotFound
	}
	return &draft, nil
}

func (s *DraftService) Delete(ctx context.Context, courseID string) error {
	return s.redis.Del(ctx, draftKeyPrefix+courseID).Err()
}

// PurgeOrphans drops drafts whose course no longer exists. TTL handles
// abandoned drafts; this handles deleted courses.
func (s *DraftService) PurgeOrphans(ctx context.Context, courseExists func(courseID string) bool) (int, error) {
	var purged int
	iter := s.redis.Scan(ctx, 0, draftKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		courseID := key[len(draftKeyPrefix):]
		if courseExists(courseID) {
			continue
		}
		if err := s.redis.Del(ctx, key).Err(); err != nil {
			s.logger.Warn("failed to purge orphaned draft", zap.String("key", key), zap.Error(err))
			continue
		}
		purged++
	}
	return purged, iter.Err()
}
