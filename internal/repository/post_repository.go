package repository

import (
	"strings"

	"learnspace_backend/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").Preload("Comments").First(&post, "id = ?", id).Error
	return &post, err
}

// FindWithPagination lists feed posts for a community, pinned first,
// optionally filtered by tag or a title/content search.
func (r *PostRepository) FindWithPagination(communityID string, offset, limit int, tag, search string) ([]model.Post, int64, error) {
	query := r.DB.Model(&model.Post{}).Where("community_id = ?", communityID)

	if tag != "" {
		query = query.Where("tags LIKE ?", "%"+tag+"%")
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.Post
	err := query.Preload("Author").Preload("Comments").
		Order("is_pinned DESC, created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error

	return posts, total, err
}

func (r *PostRepository) IncrementViews(id string) error {
	return r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).
		Error
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.DB.Save(post).Error
}

func (r *PostRepository) Delete(id string) error {
	return r.DB.Delete(&model.Post{}, "id = ?", id).Error
}

func (r *PostRepository) Like(userID uint, contentType, contentID string) error {
	like := model.PostLike{UserID: userID, ContentType: contentType, ContentID: contentID}
	if err := r.DB.Create(&like).Error; err != nil {
		return err
	}
	return r.adjustUpvotes(contentType, contentID, 1)
}

func (r *PostRepository) Unlike(userID uint, contentType, contentID string) error {
	res := r.DB.Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		Delete(&model.PostLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}
	return r.adjustUpvotes(contentType, contentID, -1)
}

func (r *PostRepository) IsLiked(userID uint, contentType, contentID string) bool {
	var count int64
	r.DB.Model(&model.PostLike{}).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, contentType, contentID).
		Count(&count)
	return count > 0
}

func (r *PostRepository) adjustUpvotes(contentType, contentID string, delta int) error {
	switch contentType {
	case "comment":
		return r.DB.Model(&model.Comment{}).
			Where("id = ?", contentID).
			Update("upvotes", gorm.Expr("upvotes + ?", delta)).
			Error
	default:
		return r.DB.Model(&model.Post{}).
			Where("id = ?", contentID).
			Update("upvotes", gorm.Expr("upvotes + ?", delta)).
			Error
	}
}
