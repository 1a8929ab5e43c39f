package models

// DailyCount is reserved for per-day rate limiting. The table is migrated
// but not read or written by the current reward logic.
type DailyCount struct {
	ID     uint   `gorm:"primaryKey"`
	UserID int64  `gorm:"not null;index:idx_daily_user_day,unique"`
	Day    string `gorm:"type:varchar(10);not null;index:idx_daily_user_day,unique"` // YYYY-MM-DD
	Count  int    `gorm:"default:0;not null"`
}

func (DailyCount) TableName() string {
	return "daily_counts"
}
