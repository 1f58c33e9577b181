package services

import (
	stderrors "errors"
	"fmt"
	"html/template"
	"strings"

	"pulse/internal/errors"
	"pulse/internal/models"
	"pulse/internal/repository/interfaces"
	"pulse/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService 负责评论树的创建、编辑和级联删除。
// 评论表是权威数据源，父级（帖子或评论）只保存子级 cid 的回引。
type CommentService struct {
	commentRepo      interfaces.CommentRepository
	postRepo         interfaces.PostRepository
	userRepo         interfaces.UserRepository
	notificationRepo interfaces.NotificationRepository
	profanity        *ProfanityService
}

// NewCommentService 创建评论服务
func NewCommentService(
	commentRepo interfaces.CommentRepository,
	postRepo interfaces.PostRepository,
	userRepo interfaces.UserRepository,
	notificationRepo interfaces.NotificationRepository,
	profanity *ProfanityService,
) *CommentService {
	return &CommentService{
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		profanity:        profanity,
	}
}

func isRecordNotFound(err error) bool {
	return stderrors.Is(err, gorm.ErrRecordNotFound)
}

// Create 发表评论或回复。
// kind=comment 时 parentID 是帖子 pid，kind=reply 时是父评论 cid。
// 先落库评论再把 cid 追加进父级列表；第二步失败会留下孤儿评论，
// 此时向上返回内部错误以便排查清理。
func (s *CommentService) Create(userID uint, text string, kind models.CommentKind, parentID string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "comment text is empty")
	}
	if kind != models.CommentKindComment && kind != models.CommentKindReply {
		return nil, errors.New(errors.ErrInvalidInput, "invalid comment kind")
	}
	if parentID == "" {
		return nil, errors.New(errors.ErrInvalidInput, "invalid parent id")
	}

	author, err := s.userRepo.FindByID(userID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, errors.New(errors.ErrNotFound, "author not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load author", err)
	}

	if s.profanity.ScreenText(text) {
		return nil, errors.New(errors.ErrProfanity, "profanity is not allowed")
	}

	// 父级存在性检查，comment 找帖子，reply 找评论
	var parentPost *models.Post
	var parentComment *models.Comment
	if kind == models.CommentKindComment {
		parentPost, err = s.postRepo.FindByPid(parentID)
	} else {
		parentComment, err = s.commentRepo.FindByCid(parentID)
	}
	if err != nil {
		if isRecordNotFound(err) {
			return nil, errors.New(errors.ErrNotFound, "parent not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load parent", err)
	}

	comment := &models.Comment{
		Cid:      utils.RandStringBytesMaskImpr(8),
		UserID:   author.ID,
		Text:     text,
		Kind:     kind,
		ParentID: parentID,
		Replies:  []string{},
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to create comment", err)
	}

	// 回写父级的子级列表
	if kind == models.CommentKindComment {
		parentPost.Comments = append(parentPost.Comments, comment.Cid)
		if err := s.postRepo.Update(parentPost); err != nil {
			return nil, errors.Wrap(errors.ErrInternal, "comment created but not linked to post", err)
		}
		// 评论变动后失效帖子详情缓存
		utils.GetCache().Delete(postCacheKey(parentPost.Pid))
	} else {
		parentComment.Replies = append(parentComment.Replies, comment.Cid)
		if err := s.commentRepo.Update(parentComment); err != nil {
			return nil, errors.Wrap(errors.ErrInternal, "reply created but not linked to parent comment", err)
		}
	}

	s.notify(author, comment, parentPost, parentComment)

	return comment, nil
}

// notify 给帖子作者或被回复者发通知，自己评论自己不通知。
// 通知是尽力而为，失败只记日志，不影响评论主流程。
func (s *CommentService) notify(actor *models.User, comment *models.Comment, parentPost *models.Post, parentComment *models.Comment) {
	if s.notificationRepo == nil {
		return
	}

	var notification *models.Notification
	if comment.Kind == models.CommentKindComment {
		if parentPost.UserID == actor.ID {
			return
		}
		notification = &models.Notification{
			UserID:  parentPost.UserID,
			ActorID: &actor.ID,
			Type:    models.NotificationTypeCommentPost,
			Reason:  fmt.Sprintf("%s 评论了您的投票「%s」", actor.Username, parentPost.Caption),
		}
	} else {
		if parentComment.UserID == actor.ID {
			return
		}
		notification = &models.Notification{
			UserID:  parentComment.UserID,
			ActorID: &actor.ID,
			Type:    models.NotificationTypeReplyComment,
			Reason:  fmt.Sprintf("%s 回复了您的评论", actor.Username),
		}
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		utils.Logger.Warn("创建评论通知失败",
			zap.String("cid", comment.Cid), zap.Error(err))
	}
}

// Edit 修改评论文本，kind、父引用和回复列表保持不变
func (s *CommentService) Edit(cid string, newText string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByCid(cid)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, errors.New(errors.ErrNotFound, "comment not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load comment", err)
	}

	if strings.TrimSpace(newText) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "comment text is empty")
	}
	if s.profanity.ScreenText(newText) {
		return nil, errors.New(errors.ErrProfanity, "profanity is not allowed")
	}

	comment.Text = newText
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to update comment", err)
	}
	return comment, nil
}

// deleteFrame 级联删除的工作栈帧
type deleteFrame struct {
	cid      string
	expanded bool // 子回复是否已压栈
}

// Delete 级联删除评论及其全部回复子树。
// 用显式栈做后序遍历：叶子先删，根最后删，回复按列表顺序处理。
// 遍历中遇到已不存在的 cid 按无操作跳过——并发修改下悬空引用是
// 预期内的状态，不作为错误。根 cid 不存在同样是无操作。
// 注意：不会把被删评论从其父级列表中摘除，读取方需容忍悬空 cid。
func (s *CommentService) Delete(cid string) error {
	stack := []deleteFrame{{cid: cid}}
	seen := make(map[string]bool) // 重复或成环的引用只处理一次

	for len(stack) > 0 {
		idx := len(stack) - 1

		if stack[idx].expanded {
			// 子树已清空，删除自身
			target := stack[idx].cid
			stack = stack[:idx]
			if err := s.commentRepo.DeleteByCid(target); err != nil {
				return errors.Wrap(errors.ErrDatabase, "failed to delete comment", err)
			}
			continue
		}

		if seen[stack[idx].cid] {
			stack = stack[:idx]
			continue
		}
		seen[stack[idx].cid] = true
		stack[idx].expanded = true

		comment, err := s.commentRepo.FindByCid(stack[idx].cid)
		if err != nil {
			if isRecordNotFound(err) {
				// 悬空引用，跳过该分支
				stack = stack[:idx]
				continue
			}
			return errors.Wrap(errors.ErrDatabase, "failed to load comment", err)
		}

		// 倒序压栈，保证按回复列表顺序出栈
		for i := len(comment.Replies) - 1; i >= 0; i-- {
			stack = append(stack, deleteFrame{cid: comment.Replies[i]})
		}
	}
	return nil
}

// CommentView 评论的展示视图，文本已渲染为净化后的 HTML
type CommentView struct {
	models.Comment
	TextHTML template.HTML
	Floor    int
}

// ThreadForPost 返回帖子下的顶层评论，按帖子列表顺序编楼层。
// 列表里的悬空 cid（评论已被删但没从帖子摘除）按不存在跳过。
func (s *CommentService) ThreadForPost(pid string) ([]CommentView, error) {
	post, err := s.postRepo.FindByPid(pid)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, errors.New(errors.ErrNotFound, "post not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load post", err)
	}

	views := make([]CommentView, 0, len(post.Comments))
	for _, cid := range post.Comments {
		comment, err := s.commentRepo.FindByCid(cid)
		if err != nil {
			if isRecordNotFound(err) {
				continue
			}
			return nil, errors.Wrap(errors.ErrDatabase, "failed to load comment", err)
		}
		views = append(views, CommentView{
			Comment:  *comment,
			TextHTML: utils.RenderMarkdown(comment.Text),
			Floor:    len(views) + 1,
		})
	}
	return views, nil
}

// GetByCid 按 cid 查询单条评论
func (s *CommentService) GetByCid(cid string) (*models.Comment, error) {
	comment, err := s.commentRepo.FindByCid(cid)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, errors.New(errors.ErrNotFound, "comment not found")
		}
		return nil, errors.Wrap(errors.ErrDatabase, "failed to load comment", err)
	}
	return comment, nil
}

// ListAll 返回全部评论，不分页
func (s *CommentService) ListAll() ([]models.Comment, error) {
	comments, err := s.commentRepo.FindAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to list comments", err)
	}
	return comments, nil
}

// ListForUser 返回某用户发表的全部评论 cid
func (s *CommentService) ListForUser(userID uint) ([]string, error) {
	cids, err := s.commentRepo.CidsByUser(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "failed to list user comments", err)
	}
	return cids, nil
}
