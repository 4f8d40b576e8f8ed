package config

import (
	"os"
	"strings"
)

type Config struct {
	Auth     AuthConf     `json:"auth"`
	Journal  JournalConf  `json:"journal"`
	Telegram TelegramConf `json:"telegram"`
	Digest   DigestConf   `json:"digest"`
}

type AuthConf struct {
	JwtSecret       string   `json:"jwt_secret"`        // 为空时启动生成随机值，重启后令牌失效
	TokenTTLHours   int      `json:"token_ttl_hours"`   // 默认24
	CodeTTLMinutes  int      `json:"code_ttl_minutes"`  // 一次性登录码有效期，默认30
	AdminEmails     []string `json:"admin_emails"`      // 注册时自动赋予 admin 角色
	SecureCookie    bool     `json:"secure_cookie"`
	RedirectDefault string   `json:"redirect_default"`  // 回调默认跳转，默认 /dashboard
}

// JournalConf 新用户的默认设置
type JournalConf struct {
	StartingEquity float64  `json:"starting_equity"`
	Currency       string   `json:"currency"`
	Sessions       []string `json:"sessions"`
	Strategies     []string `json:"strategies"`
	AccountTypes   []string `json:"account_types"`
	AssetClass     string   `json:"asset_class"`
	Timezone       string   `json:"timezone"`
}

type TelegramConf struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
}

type DigestConf struct {
	Enabled bool   `json:"enabled"`
	Cron    string `json:"cron"` // 默认每周一 08:00
}

const EnvJwtSecret = "PIPVAULT_JWT_SECRET"

// Normalize 填充默认值，环境变量优先于配置文件
func (c *Config) Normalize() {
	if secret := os.Getenv(EnvJwtSecret); secret != "" {
		c.Auth.JwtSecret = secret
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 24
	}
	if c.Auth.CodeTTLMinutes <= 0 {
		c.Auth.CodeTTLMinutes = 30
	}
	if c.Auth.RedirectDefault == "" {
		c.Auth.RedirectDefault = "/dashboard"
	}
	for i, email := range c.Auth.AdminEmails {
		c.Auth.AdminEmails[i] = strings.ToLower(strings.TrimSpace(email))
	}

	j := &c.Journal
	if j.StartingEquity <= 0 {
		j.StartingEquity = 10000
	}
	if j.Currency == "" {
		j.Currency = "USD"
	}
	if len(j.Sessions) == 0 {
		j.Sessions = []string{"London", "New York", "Asia"}
	}
	if len(j.Strategies) == 0 {
		j.Strategies = []string{"Trend Continuation", "Breakout", "Reversal"}
	}
	if len(j.AccountTypes) == 0 {
		j.AccountTypes = []string{"Demo", "Challenge", "Funded", "Live"}
	}
	if j.AssetClass == "" {
		j.AssetClass = "forex"
	}
	if j.Timezone == "" {
		j.Timezone = "UTC"
	}

	if c.Digest.Cron == "" {
		c.Digest.Cron = "0 8 * * 1"
	}
}

func (c *Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(email)
	for _, e := range c.Auth.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}

// Default 测试和首次启动使用
func Default() *Config {
	c := &Config{}
	c.Normalize()
	return c
}
