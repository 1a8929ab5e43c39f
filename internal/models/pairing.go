package models

import (
	"time"
)

// Pairing is one directional half of an active chat link. A pairing of A
// and B is persisted as two rows (A→B and B→A) so the partner of either
// side is a single indexed lookup. The unique index on UserID enforces at
// most one active partner per user.
type Pairing struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    int64     `gorm:"uniqueIndex;not null"`
	PartnerID int64     `gorm:"not null;index"`
	StartedAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Pairing) TableName() string {
	return "pairings"
}
