package models

import (
	"time"
)

// Ticket is a single lottery entry. A user may hold any number of
// outstanding tickets; the whole pool is cleared on every draw.
type Ticket struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Ticket) TableName() string {
	return "tickets"
}
