package interfaces

import "pulse/internal/models"

// PostRepository 接口定义了帖子仓库应该实现的方法
type PostRepository interface {
	Create(post *models.Post) error
	FindByPid(pid string) (*models.Post, error)
	Update(post *models.Post) error
	DeleteByPid(pid string) error
}
