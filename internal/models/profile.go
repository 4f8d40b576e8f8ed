package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile 用户设置，一个用户一行，ID 与 User.ID 相同
type Profile struct {
	ID             string                      `gorm:"primaryKey;size:26" json:"id"`
	FirstName      string                      `gorm:"size:100" json:"first_name"`
	LastName       string                      `gorm:"size:100" json:"last_name"`
	StartingEquity float64                     `gorm:"type:decimal(20,2);not null" json:"starting_equity"`
	Currency       string                      `gorm:"size:8;not null" json:"currency"`
	Sessions       datatypes.JSONSlice[string] `json:"sessions"`
	Strategies     datatypes.JSONSlice[string] `json:"strategies"`
	AccountTypes   datatypes.JSONSlice[string] `json:"account_types"`
	AssetClass     string                      `gorm:"size:16;not null" json:"asset_class"`
	Role           string                      `gorm:"size:20;not null;default:'user'" json:"role"`
	ViewMode       string                      `gorm:"size:16;not null;default:'pips'" json:"view_mode"`
	Timezone       string                      `gorm:"size:64;not null;default:'UTC'" json:"timezone"`
	TelegramChatID string                      `gorm:"size:64" json:"telegram_chat_id"`
	DigestEnabled  bool                        `gorm:"not null;default:false" json:"digest_enabled"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Location 解析时区，无效时回退到 UTC
func (p Profile) Location() *time.Location {
	if p.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
