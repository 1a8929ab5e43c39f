package models

import (
	"time"
)

type CoinTransaction struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          int64     `gorm:"not null;index"` // Telegram id
	Amount          int64     `gorm:"not null"`       // signed, negative for deductions
	TransactionType string    `gorm:"type:varchar(50);not null;index"`
	Description     string    `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"autoCreateTime;index"`
}

// Transaction type constants
const (
	TxTypeWelcomeBonus    = "welcome_bonus"
	TxTypeDailyBonus      = "daily_bonus"
	TxTypeGiftSent        = "gift_sent"
	TxTypeGiftReceived    = "gift_received"
	TxTypeFastMatch       = "fast_match"
	TxTypeLotteryTicket   = "lottery_ticket"
	TxTypeLotteryPayout   = "lottery_payout"
	TxTypeAdminAdjustment = "admin_adjustment"
)

func (CoinTransaction) TableName() string {
	return "coin_transactions"
}
