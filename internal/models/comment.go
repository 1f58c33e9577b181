package models

import (
	"time"
)

type CommentKind string

const (
	CommentKindComment CommentKind = "comment" // 直接挂在帖子下
	CommentKindReply   CommentKind = "reply"   // 挂在另一条评论下
)

// ParentRef 评论的父引用。ParentID 的含义由 Kind 决定：
// comment 的父级是帖子（pid），reply 的父级是评论（cid），
// 用显式的引用类型避免两种 id 被混用。
type ParentRef struct {
	Kind CommentKind
	ID   string
}

func (r ParentRef) IsPost() bool    { return r.Kind == CommentKindComment }
func (r ParentRef) IsComment() bool { return r.Kind == CommentKindReply }

type Comment struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	Cid      string      `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	UserID   uint        `gorm:"not null;index" json:"user_id"`
	User     User        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Text     string      `gorm:"type:text;not null" json:"text"`
	Kind     CommentKind `gorm:"type:varchar(10);not null" json:"kind"`
	ParentID string      `gorm:"size:8;not null;index" json:"parent_id"`

	// 子回复的 cid 列表，顺序即创建顺序。
	// 直接删除评论不会把自己从父级列表里摘掉，读取方需把悬空 cid 当作不存在。
	Replies []string `gorm:"type:jsonb;serializer:json" json:"replies"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Parent 返回带类型标记的父引用
func (c *Comment) Parent() ParentRef {
	return ParentRef{Kind: c.Kind, ID: c.ParentID}
}
