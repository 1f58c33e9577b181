package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"pulse/internal/errors"
	"pulse/internal/models"
	"pulse/internal/repository/interfaces"
	"pulse/internal/utils"
)

// 帖子描述长度上限
const maxCaptionLength = 120

// 各投票类型的选项数量限制
const (
	multiChoiceMinOptions = 3
	multiChoiceMaxOptions = 10
	quizOptionCount       = 4
)

// PollOptionInput 创建投票时的选项输入，Correct 仅 quiz 类型有意义
type PollOptionInput struct {
	Value   string
	Correct bool
}

// PostService 负责投票帖子的创建、应答、编辑和删除
type PostService struct {
	postRepo  interfaces.PostRepository
	userRepo  interfaces.UserRepository
	profanity *ProfanityService
}

// NewPostService 创建帖子服务
func NewPostService(postRepo interfaces.PostRepository, userRepo interfaces.UserRepository, profanity *ProfanityService) *PostService {
	return &PostService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		profanity: profanity,
	}
}

func postCacheKey(pid string) string {
	return fmt.Sprintf("post:detail:%s", pid)
}

// Create 发布投票。描述中的 #标签 在此时提取并固定，之后不再变更。
func (s *PostService) Create(userID uint, caption string, kind models.PostKind, options []PollOptionInput, visibility models.PostVisibility, isSponsored bool) (*models.Post, error) {
	author, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, errors.New(errors.ErrNotFound, "user not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load user", err)
	}

	if strings.TrimSpace(caption) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "caption is empty")
	}
	if utf8.RuneCountInString(caption) > maxCaptionLength {
		return nil, errors.New(errors.ErrInvalidInput, "caption is too long")
	}
	if s.profanity.ScreenText(caption) {
		return nil, errors.New(errors.ErrProfanity, "profanity is not allowed")
	}
	if visibility != models.PostVisibilityPublic && visibility != models.PostVisibilityPrivate {
		return nil, errors.New(errors.ErrInvalidInput, "invalid visibility")
	}

	pollOptions, err := buildOptions(kind, options)
	if err != nil {
		return nil, err
	}

	// 标签逐个过屏蔽词表，帖子整体拒绝
	hashtags := utils.ExtractHashtags(caption)
	for _, tag := range hashtags {
		if s.profanity.IsProfane([]string{tag}) {
			return nil, errors.New(errors.ErrProfanity, "hashtag profanity is not allowed")
		}
	}

	post := &models.Post{
		Pid:         utils.RandStringBytesMaskImpr(8),
		UserID:      author.ID,
		Caption:     caption,
		Kind:        kind,
		Options:     pollOptions,
		Visibility:  visibility,
		Comments:    []string{},
		Hashtags:    hashtags,
		IsSponsored: isSponsored,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create post", err)
	}
	return post, nil
}

// buildOptions 校验选项并初始化应答计数
func buildOptions(kind models.PostKind, options []PollOptionInput) ([]models.PollOption, error) {
	switch kind {
	case models.PostKindTwoChoice, models.PostKindSlider:
		if len(options) != 2 {
			return nil, errors.New(errors.ErrInvalidInput, "invalid poll options")
		}
	case models.PostKindMultiChoice:
		if len(options) < multiChoiceMinOptions || len(options) > multiChoiceMaxOptions {
			return nil, errors.New(errors.ErrInvalidInput, "invalid poll options")
		}
	case models.PostKindQuiz:
		if len(options) != quizOptionCount {
			return nil, errors.New(errors.ErrInvalidInput, "invalid poll options")
		}
	default:
		return nil, errors.New(errors.ErrInvalidInput, "invalid post kind")
	}

	correctDetected := false
	pollOptions := make([]models.PollOption, 0, len(options))
	for _, opt := range options {
		if strings.TrimSpace(opt.Value) == "" {
			return nil, errors.New(errors.ErrInvalidInput, "invalid poll options")
		}
		option := models.PollOption{Value: opt.Value, Responses: 0}
		if kind == models.PostKindQuiz {
			option.Correct = opt.Correct
			if opt.Correct {
				correctDetected = true
			}
		}
		pollOptions = append(pollOptions, option)
	}

	// quiz 必须至少有一个正确答案
	if kind == models.PostKindQuiz && !correctDetected {
		return nil, errors.New(errors.ErrInvalidInput, "quiz needs a correct option")
	}
	return pollOptions, nil
}

// GetByPid 查询帖子详情，短 TTL 缓存
func (s *PostService) GetByPid(pid string) (*models.Post, error) {
	data, err := utils.GetCache().Fetch(postCacheKey(pid), 5*time.Minute, func() (interface{}, error) {
		return s.postRepo.FindByPid(pid)
	})
	if err != nil {
		if isRecordNotFound(err) {
			return nil, errors.New(errors.ErrNotFound, "post not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}
	return data.(*models.Post), nil
}

// AddResponse 记录一次投票应答，选项和总数同时 +1
func (s *PostService) AddResponse(userID uint, pid string, optionIndex int) error {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if isRecordNotFound(err) {
			return errors.New(errors.ErrNotFound, "user not found")
		}
		return errors.Wrap(errors.ErrDatabase, "failed to load user", err)
	}

	post, err := s.postRepo.FindByPid(pid)
	if err != nil {
		if isRecordNotFound(err) {
			return errors.New(errors.ErrNotFound, "post not found")
		}
		return errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}

	if optionIndex < 0 || optionIndex >= len(post.Options) {
		return errors.New(errors.ErrInvalidInput, "option index out of range")
	}

	post.Options[optionIndex].Responses++
	post.Responses++
	if err := s.postRepo.Update(post); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to save response", err)
	}

	utils.GetCache().Delete(postCacheKey(pid))
	return nil
}

// EditCaption 修改帖子描述，仅作者可改。
// 标签在发布时已固定，改描述不会重新提取。
func (s *PostService) EditCaption(userID uint, pid string, newCaption string) (*models.Post, error) {
	post, err := s.postRepo.FindByPid(pid)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, errors.New(errors.ErrNotFound, "post not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}

	if post.UserID != userID {
		return nil, errors.New(errors.ErrForbidden, "only the author can edit the caption")
	}
	if strings.TrimSpace(newCaption) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "caption is empty")
	}
	if utf8.RuneCountInString(newCaption) > maxCaptionLength {
		return nil, errors.New(errors.ErrInvalidInput, "caption is too long")
	}
	if s.profanity.ScreenText(newCaption) {
		return nil, errors.New(errors.ErrProfanity, "profanity is not allowed")
	}

	post.Caption = newCaption
	post.Edited = true
	if err := s.postRepo.Update(post); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update post", err)
	}

	utils.GetCache().Delete(postCacheKey(pid))
	return post, nil
}

// Delete 删除帖子，仅作者可删。
// 不级联删评论：挂在帖子下的评论成为悬空节点，读取方按不存在处理。
func (s *PostService) Delete(userID uint, pid string) error {
	post, err := s.postRepo.FindByPid(pid)
	if err != nil {
		if isRecordNotFound(err) {
			return errors.New(errors.ErrNotFound, "post not found")
		}
		return errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}

	if post.UserID != userID {
		return errors.New(errors.ErrForbidden, "only the author can delete the post")
	}

	if err := s.postRepo.DeleteByPid(pid); err != nil {
		return errors.Wrap(errors.ErrDatabase, "failed to delete post", err)
	}

	utils.GetCache().Delete(postCacheKey(pid))
	return nil
}
