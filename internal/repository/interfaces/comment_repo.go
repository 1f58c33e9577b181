package interfaces

import "pulse/internal/models"

// CommentRepository 接口定义了评论仓库应该实现的方法。
// 未命中一律返回 gorm.ErrRecordNotFound，由服务层翻译成业务错误。
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByCid(cid string) (*models.Comment, error)
	Update(comment *models.Comment) error
	DeleteByCid(cid string) error
	FindAll() ([]models.Comment, error)
	// CidsByUser 返回某用户发表的全部评论 cid，供注销账号时级联删除
	CidsByUser(userID uint) ([]string, error)
}
