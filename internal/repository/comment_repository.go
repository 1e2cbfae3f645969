package repository

import (
	"learnspace_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByID(id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Preload("Author").First(&comment, "id = ?", id).Error
	return &comment, err
}

func (r *CommentRepository) FindByPost(postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Preload("Author").Preload("ReplyToUser").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) CountByPost(postID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *CommentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Comment{}, "id = ?", id).Error
}
