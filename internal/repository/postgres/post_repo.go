package postgres

import (
	"pulse/internal/models"
	"pulse/internal/repository/interfaces"

	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建基于 gorm 的帖子仓库
func NewPostRepository(db *gorm.DB) interfaces.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) FindByPid(pid string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Where("pid = ?", pid).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) DeleteByPid(pid string) error {
	return r.db.Unscoped().Where("pid = ?", pid).Delete(&models.Post{}).Error
}
