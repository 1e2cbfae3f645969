package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"learnspace_backend/internal/model"
	"learnspace_backend/internal/repository"
	"learnspace_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// viewDedupWindow is how long a user's view of a post counts as the same
// view.
const viewDedupWindow = 30 * time.Minute

type CommunityService struct {
	communityRepo *repository.CommunityRepository
	postRepo      *repository.PostRepository
	commentRepo   *repository.CommentRepository
	redis         *redis.Client
	logger        *zap.Logger
}

func NewCommunityService(
	communityRepo *repository.CommunityRepository,
	postRepo *repository.PostRepository,
	commentRepo *repository.CommentRepository,
	rdb *redis.Client,
	logger *zap.Logger,
) *CommunityService {
	return &CommunityService{
		communityRepo: communityRepo,
		postRepo:      postRepo,
		commentRepo:   commentRepo,
		redis:         rdb,
		logger:        logger,
	}
}

type CreateCommunityInput struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
}

func (s *CommunityService) Create(ownerID uint, input CreateCommunityInput) (*model.Community, error) {
	community := &model.Community{
		Name:        input.Name,
		Slug:        Slugify(input.Name),
		Description: input.Description,
		LogoURL:     input.LogoURL,
		OwnerID:     ownerID,
	}

	// Slugs are unique; retry with a suffix when the name is taken.
	if _, err := s.communityRepo.FindBySlug(community.Slug); err == nil {
		community.Slug = fmt.Sprintf("%s-%s", community.Slug, util.GenerateRandomString(6))
	}

	if err := s.communityRepo.Create(community); err != nil {
		return nil, err
	}
	s.logger.Info("community created",
		zap.String("communityId", community.ID),
		zap.String("slug", community.Slug))
	return community, nil
}

func (s *CommunityService) Get(id string) (*model.Community, error) {
	return s.communityRepo.FindByID(id)
}

func (s *CommunityService) GetBySlug(slug string) (*model.Community, error) {
	return s.communityRepo.FindBySlug(slug)
}

func (s *CommunityService) List(page, pageSize int) ([]model.Community, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.communityRepo.FindAll((page-1)*pageSize, pageSize)
}

type CreatePostInput struct {
	CommunityID string   `json:"communityId" binding:"required"`
	Title       string   `json:"title" binding:"required,max=255"`
	Content     string   `json:"content" binding:"required"`
	Tags        []string `json:"tags"`
}

func (s *CommunityService) CreatePost(authorID uint, input CreatePostInput) (*model.Post, error) {
	post := &model.Post{
		CommunityID: input.CommunityID,
		Title:       input.Title,
		Content:     input.Content,
		AuthorID:    authorID,
		Tags:        strings.Join(input.Tags, ","),
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return s.postRepo.FindByID(post.ID)
}

// GetPost returns a post and counts the view. A user re-opening the same
// post within the dedup window does not bump the counter; the guard is a
// Redis SET NX with a TTL.
func (s *CommunityService) GetPost(ctx context.Context, id string, viewerID uint) (*model.Post, error) {
	post, err := s.postRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		key := fmt.Sprintf("learnspace:post:viewed:%s:%d", id, viewerID)
		fresh, err := s.redis.SetNX(ctx, key, 1, viewDedupWindow).Result()
		if err != nil {
			// Counting views is best effort; serve the post regardless.
			s.logger.Warn("view dedup check failed", zap.String("postId", id), zap.Error(err))
		} else if fresh {
			if err := s.postRepo.IncrementViews(id); err != nil {
				s.logger.Warn("view increment failed", zap.String("postId", id), zap.Error(err))
			} else {
				post.Views++
			}
		}
	}
	return post, nil
}

func (s *CommunityService) ListPosts(communityID string, page, pageSize int, tag, search string) ([]model.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.postRepo.FindWithPagination(communityID, (page-1)*pageSize, pageSize, tag, search)
}

func (s *CommunityService) DeletePost(id string, actorID uint, actorRole model.UserRole) error {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return err
	}
	if post.AuthorID != actorID && actorRole != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.postRepo.Delete(id)
}

// PinPost toggles the pinned flag. Only the community owner or an admin
// may pin.
func (s *CommunityService) PinPost(id string, pinned bool, actorID uint, actorRole model.UserRole) error {
	post, err := s.postRepo.FindByID(id)
	if err != nil {
		return err
	}

	community, err := s.communityRepo.FindByID(post.CommunityID)
	if err != nil {
		return err
	}
	if community.OwnerID != actorID && actorRole != model.Admin {
		return util.ErrPermissionDenied
	}

	post.IsPinned = pinned
	return s.postRepo.Update(post)
}

type CreateCommentInput struct {
	Content    string  `json:"content" binding:"required"`
	ParentID   *string `json:"parentId"`
	ReplyToUID *uint   `json:"replyToUid"`
}

func (s *CommunityService) CreateComment(postID string, authorID uint, input CreateCommentInput) (*model.Comment, error) {
	if _, err := s.postRepo.FindByID(postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:     postID,
		AuthorID:   authorID,
		Content:    input.Content,
		ParentID:   input.ParentID,
		ReplyToUID: input.ReplyToUID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByID(comment.ID)
}

func (s *CommunityService) ListComments(postID string) ([]model.Comment, error) {
	return s.commentRepo.FindByPost(postID)
}

func (s *CommunityService) DeleteComment(id string, actorID uint, actorRole model.UserRole) error {
	comment, err := s.commentRepo.FindByID(id)
	if err != nil {
		return err
	}
	if comment.AuthorID != actorID && actorRole != model.Admin {
		return util.ErrPermissionDenied
	}
	return s.commentRepo.Delete(id)
}

// ToggleLike likes or unlikes a post or comment and reports the new
// state. contentType is "post" or "comment".
func (s *CommunityService) ToggleLike(userID uint, contentType, contentID string) (liked bool, err error) {
	if s.postRepo.IsLiked(userID, contentType, contentID) {
		return false, s.postRepo.Unlike(userID, contentType, contentID)
	}
	return true, s.postRepo.Like(userID, contentType, contentID)
}

// Slugify lowers a name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
