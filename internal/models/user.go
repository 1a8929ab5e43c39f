package models

import (
	"time"
)

type User struct {
	ID             uint       `gorm:"primaryKey"`
	TelegramID     int64      `gorm:"uniqueIndex;not null"`
	Handle         string     `gorm:"type:varchar(255)"`
	PublicID       string     `gorm:"uniqueIndex;type:varchar(8)"`
	Gender         *string    `gorm:"type:varchar(32)"` // free-form tag, nil until set
	Age            *int
	VIP            bool       `gorm:"default:false;not null"`
	CoinBalance    int64      `gorm:"default:0;not null"`
	DailyStreak    int        `gorm:"default:0;not null"`
	LastDailyClaim *time.Time `gorm:"index"`
	LastSeen       time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

// HasClaimedOn reports whether the user's last daily claim falls on the
// same UTC calendar day as t.
func (u *User) HasClaimedOn(t time.Time) bool {
	if u.LastDailyClaim == nil {
		return false
	}
	y1, m1, d1 := u.LastDailyClaim.UTC().Date()
	y2, m2, d2 := t.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
