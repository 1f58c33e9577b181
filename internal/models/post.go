package models

import (
	"time"
)

type PostKind string

const (
	PostKindTwoChoice   PostKind = "twoChoice"
	PostKindMultiChoice PostKind = "multiChoice"
	PostKindQuiz        PostKind = "quiz"
	PostKindSlider      PostKind = "slider"
)

type PostVisibility string

const (
	PostVisibilityPublic  PostVisibility = "public"
	PostVisibilityPrivate PostVisibility = "private"
)

// PollOption 投票选项，Correct 仅 quiz 类型使用
type PollOption struct {
	Value     string `json:"value"`
	Correct   bool   `json:"correct,omitempty"`
	Responses int    `json:"responses"`
}

type Post struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Pid        string         `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       User           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Caption    string         `gorm:"size:120;not null" json:"caption"`
	Kind       PostKind       `gorm:"type:varchar(20);not null" json:"kind"`
	Options    []PollOption   `gorm:"type:jsonb;serializer:json" json:"options"`
	Visibility PostVisibility `gorm:"type:varchar(10);not null;default:'public'" json:"visibility"`
	Responses  int            `gorm:"default:0" json:"responses"`
	Likes      int            `gorm:"default:0" json:"likes"`
	Shares     int            `gorm:"default:0" json:"shares"`

	// 顶层评论的 cid 列表，评论表才是权威数据源，这里只存回引
	Comments []string `gorm:"type:jsonb;serializer:json" json:"comments"`

	// 发布时从 caption 提取，之后不再变更
	Hashtags []string `gorm:"type:jsonb;serializer:json" json:"hashtags"`

	Edited      bool      `gorm:"default:false" json:"edited"`
	IsSponsored bool      `gorm:"default:false" json:"is_sponsored"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
