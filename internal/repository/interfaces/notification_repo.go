package interfaces

import "pulse/internal/models"

// NotificationRepository 接口定义了通知仓库应该实现的方法
type NotificationRepository interface {
	Create(notification *models.Notification) error
	ListByUser(userID uint) ([]models.Notification, error)
	MarkRead(id uint) error
}
