package models

import "time"

// AuthCode 一次性登录码，用于邮件回调换取会话
type AuthCode struct {
	ID        string     `gorm:"primaryKey;size:26" json:"id"`
	UserID    string     `gorm:"size:26;not null;index" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (AuthCode) TableName() string {
	return "auth_codes"
}

// Usable 未使用且未过期
func (c AuthCode) Usable(now time.Time) bool {
	return c.UsedAt == nil && now.Before(c.ExpiresAt)
}
