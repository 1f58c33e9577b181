package postgres

import (
	"pulse/internal/models"
	"pulse/internal/repository/interfaces"

	"gorm.io/gorm"
)

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建基于 gorm 的评论仓库
func NewCommentRepository(db *gorm.DB) interfaces.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByCid(cid string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("cid = ?", cid).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) DeleteByCid(cid string) error {
	return r.db.Unscoped().Where("cid = ?", cid).Delete(&models.Comment{}).Error
}

func (r *commentRepository) FindAll() ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) CidsByUser(userID uint) ([]string, error) {
	var cids []string
	if err := r.db.Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("cid", &cids).Error; err != nil {
		return nil, err
	}
	return cids, nil
}
