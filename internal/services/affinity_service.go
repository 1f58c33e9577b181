package services

import (
	"pulse/internal/errors"
	"pulse/internal/models"
	"pulse/internal/repository/interfaces"
)

// 互动动作对标签兴趣值的权重
const (
	WeightLike    = 3
	WeightComment = 1
	WeightShare   = 5
)

// AffinityService 维护用户的标签兴趣值：用户点赞/评论/分享带标签的
// 帖子时，帖子的每个标签按动作权重累加到用户的 AffinityMap 里。
// 只增不减，没有衰减。
type AffinityService struct {
	userRepo interfaces.UserRepository
	postRepo interfaces.PostRepository
}

// NewAffinityService 创建兴趣值服务
func NewAffinityService(userRepo interfaces.UserRepository, postRepo interfaces.PostRepository) *AffinityService {
	return &AffinityService{
		userRepo: userRepo,
		postRepo: postRepo,
	}
}

func (s *AffinityService) lookup(userID uint, pid string) (*models.User, *models.Post, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, nil, errors.New(errors.ErrNotFound, "user not found")
		}
		return nil, nil, errors.Wrap(errors.ErrDatabase, "failed to load user", err)
	}
	post, err := s.postRepo.FindByPid(pid)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, nil, errors.New(errors.ErrNotFound, "post not found")
		}
		return nil, nil, errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}
	return user, post, nil
}

// applyWeights 把帖子标签按权重累加进用户兴趣表，标签为空时不做任何事
func applyWeights(user *models.User, hashtags []string, weight int) {
	if len(hashtags) == 0 {
		return
	}
	if user.AffinityMap == nil {
		user.AffinityMap = make(map[string]int, len(hashtags))
	}
	for _, tag := range hashtags {
		user.AffinityMap[tag] += weight
	}
}

// Bump 按给定权重累加帖子标签的兴趣值并保存用户。
// 纯累加，不幂等：同一次互动重复调用会重复计分，
// 至多一次的保证由调用方负责（参见 Like 的 LikedPosts 检查）。
// 帖子没有标签时直接成功返回。
func (s *AffinityService) Bump(userID uint, pid string, weight int) error {
	user, post, err := s.lookup(userID, pid)
	if err != nil {
		return err
	}
	if len(post.Hashtags) == 0 {
		return nil
	}
	applyWeights(user, post.Hashtags, weight)
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to save affinity map", err)
	}
	return nil
}

// Like 点赞：兴趣值 +3。
// 用 LikedPosts 保证同一帖子只计一次分，重复点赞是无操作。
func (s *AffinityService) Like(userID uint, pid string) error {
	user, post, err := s.lookup(userID, pid)
	if err != nil {
		return err
	}
	if user.HasLiked(post.Pid) {
		return nil
	}

	applyWeights(user, post.Hashtags, WeightLike)
	user.LikedPosts = append(user.LikedPosts, post.Pid)
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to save affinity map", err)
	}

	post.Likes++
	if err := s.postRepo.Update(post); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to update post likes", err)
	}
	return nil
}

// CommentOn 评论互动：兴趣值 +1，评论可以重复所以每次都计分
func (s *AffinityService) CommentOn(userID uint, pid string) error {
	return s.Bump(userID, pid, WeightComment)
}

// Share 分享：兴趣值 +5，分享不设上限，每次都计分
func (s *AffinityService) Share(userID uint, pid string) error {
	user, post, err := s.lookup(userID, pid)
	if err != nil {
		return err
	}

	applyWeights(user, post.Hashtags, WeightShare)
	if !containsString(user.SharedPosts, post.Pid) {
		user.SharedPosts = append(user.SharedPosts, post.Pid)
	}
	if err := s.userRepo.Update(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to save affinity map", err)
	}

	post.Shares++
	if err := s.postRepo.Update(post); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to update post shares", err)
	}
	return nil
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}
