package models

import (
	"time"

	"github.com/dushixiang/pipvault/pkg/stats"
)

const (
	DirectionLong  = "LONG"
	DirectionShort = "SHORT"
)

// Emotions 情绪标签
var Emotions = []string{"Confident", "Neutral", "FOMO", "Greedy", "Hesitant", "Revenge"}

// Trade 交易日志
type Trade struct {
	ID          string     `gorm:"primaryKey;type:varchar(26)" json:"id"`
	UserID      string     `gorm:"type:varchar(26);not null;index" json:"user_id"`
	Date        time.Time  `gorm:"not null;index" json:"date"`      // 开仓时间
	ExitDate    *time.Time `json:"exit_date"`                       // 平仓时间
	Pair        string     `gorm:"type:varchar(32);not null" json:"pair"`
	AssetClass  string     `gorm:"type:varchar(16);not null" json:"asset_class"` // forex/futures
	Direction   string     `gorm:"type:varchar(8);not null" json:"direction"`    // LONG/SHORT
	EntryPrice  float64    `gorm:"type:decimal(20,8);not null" json:"entry_price"`
	StopLoss    float64    `gorm:"type:decimal(20,8)" json:"stop_loss"`
	TakeProfit  float64    `gorm:"type:decimal(20,8)" json:"take_profit"`
	RiskPips    float64    `gorm:"type:decimal(20,2)" json:"risk_pips"`
	RewardPips  float64    `gorm:"type:decimal(20,2)" json:"reward_pips"`
	RRRatio     float64    `gorm:"column:rr_ratio;type:decimal(10,2)" json:"rr_ratio"`
	Pnl         float64    `gorm:"type:decimal(20,2)" json:"pnl"`          // pips/points
	PnlCurrency float64    `gorm:"type:decimal(20,2)" json:"pnl_currency"` // 毛盈亏
	Commission  float64    `gorm:"type:decimal(20,2)" json:"commission"`
	Swap        float64    `gorm:"type:decimal(20,2)" json:"swap"`
	Setup       string     `gorm:"type:varchar(100)" json:"setup"`
	Emotion     string     `gorm:"type:varchar(20)" json:"emotion"`
	Session     string     `gorm:"type:varchar(50)" json:"session"`
	AccountType string     `gorm:"type:varchar(50)" json:"account_type"`
	Comment     string     `gorm:"type:text" json:"comment"`
	ChartURL    string     `gorm:"column:chart_url;type:varchar(500)" json:"chart_url"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Trade) TableName() string {
	return "trades"
}

// NetPnlCurrency 扣除手续费和隔夜利息后的盈亏
func (t Trade) NetPnlCurrency() float64 {
	return t.Entry().NetCurrency()
}

// Entry 转换为统计快照
func (t Trade) Entry() stats.Entry {
	return stats.Entry{
		ID:          t.ID,
		Date:        t.Date,
		ExitDate:    t.ExitDate,
		Pair:        t.Pair,
		Setup:       t.Setup,
		Emotion:     t.Emotion,
		Session:     t.Session,
		AccountType: t.AccountType,
		Pnl:         t.Pnl,
		PnlCurrency: t.PnlCurrency,
		Commission:  t.Commission,
		Swap:        t.Swap,
	}
}

func Entries(trades []Trade) []stats.Entry {
	entries := make([]stats.Entry, 0, len(trades))
	for _, t := range trades {
		entries = append(entries, t.Entry())
	}
	return entries
}
