package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Bio      string `gorm:"size:200" json:"bio"` // 个人简介

	// AffinityMap 记录用户对各个话题标签的兴趣权重
	// 只增不减：点赞 +3，评论 +1，分享 +5，缺失的 key 视为 0
	AffinityMap map[string]int `gorm:"type:jsonb;serializer:json" json:"affinity_map"`

	// 互动记录，用于防止同一互动重复计分
	LikedPosts  []string `gorm:"type:jsonb;serializer:json" json:"liked_posts"`
	SharedPosts []string `gorm:"type:jsonb;serializer:json" json:"shared_posts"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// No DeletedAt for hard delete
}

// AffinityOf 返回用户对某个标签的兴趣值，未出现过的标签返回 0
func (u *User) AffinityOf(hashtag string) int {
	if u.AffinityMap == nil {
		return 0
	}
	return u.AffinityMap[hashtag]
}

// HasLiked 检查用户是否已点赞过该帖子
func (u *User) HasLiked(pid string) bool {
	for _, p := range u.LikedPosts {
		if p == pid {
			return true
		}
	}
	return false
}
