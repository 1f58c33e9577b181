package interfaces

import "pulse/internal/models"

// UserRepository 接口定义了用户仓库应该实现的方法
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
}
