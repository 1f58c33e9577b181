package services

import (
	"strings"

	"pulse/internal/errors"
	"pulse/internal/models"
	"pulse/internal/repository/interfaces"
	"pulse/internal/utils"

	"go.uber.org/zap"
)

// UserService 负责账号的注册与注销。
// 认证、密码等凭据管理不在本服务范围内。
type UserService struct {
	userRepo    interfaces.UserRepository
	commentRepo interfaces.CommentRepository
	comments    *CommentService
	profanity   *ProfanityService
}

// NewUserService 创建用户服务
func NewUserService(
	userRepo interfaces.UserRepository,
	commentRepo interfaces.CommentRepository,
	comments *CommentService,
	profanity *ProfanityService,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		commentRepo: commentRepo,
		comments:    comments,
		profanity:   profanity,
	}
}

// Register 注册新用户，兴趣表从空表开始
func (s *UserService) Register(username, email, bio string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "username and email are required")
	}
	if s.profanity.ScreenText(username) || s.profanity.ScreenText(bio) {
		return nil, errors.New(errors.ErrProfanity, "profanity is not allowed")
	}

	user := &models.User{
		Username:    username,
		Email:       email,
		Bio:         bio,
		AffinityMap: map[string]int{},
		LikedPosts:  []string{},
		SharedPosts: []string{},
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create user", err)
	}
	return user, nil
}

// Delete 注销账号：先级联删除该用户发表的所有评论（含各自的回复
// 子树），再删除用户本身。评论不会先从帖子的列表里摘除，留下的
// 悬空 cid 由读取方按不存在处理。
func (s *UserService) Delete(userID uint) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if isRecordNotFound(err) {
			return errors.New(errors.ErrNotFound, "user not found")
		}
		return errors.Wrap(errors.ErrDatabase, "failed to load user", err)
	}

	cids, err := s.commentRepo.CidsByUser(userID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to list user comments", err)
	}

	for _, cid := range cids {
		// 前面的级联可能已经带掉了后面的 cid，Delete 对不存在的
		// 评论是无操作，这里不需要关心顺序
		if err := s.comments.Delete(cid); err != nil {
			return err
		}
	}

	utils.Logger.Info("用户评论级联删除完成",
		zap.Uint("user_id", userID), zap.Int("comments", len(cids)))

	if err := s.userRepo.Delete(userID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to delete user", err)
	}
	return nil
}
