package services

import (
	"pulse/internal/errors"
	"pulse/internal/models"
	"pulse/internal/repository/interfaces"
)

// NotificationService 查询和已读标记。
// 通知的创建在各业务服务内完成（见 CommentService.notify）。
type NotificationService struct {
	notificationRepo interfaces.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(notificationRepo interfaces.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListForUser 返回用户收到的通知，新的在前
func (s *NotificationService) ListForUser(userID uint) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to list notifications", err)
	}
	return notifications, nil
}

// MarkRead 将单条通知标记为已读
func (s *NotificationService) MarkRead(id uint) error {
	if err := s.notificationRepo.MarkRead(id); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to mark notification read", err)
	}
	return nil
}
