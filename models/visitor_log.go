package models

import "time"

// VisitorLog stores one row per recorded page view. Rows are append-only:
// nothing in the API mutates or deletes them after insert.
type VisitorLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Page       string    `gorm:"size:128;not null;index" json:"page"`
	UserAgent  *string   `gorm:"size:512" json:"userAgent"`
	IPAddress  *string   `gorm:"size:45" json:"ipAddress"`
	Referrer   *string   `gorm:"size:512" json:"referrer"`
	ScreenSize *string   `gorm:"size:32" json:"screenSize"`
	Language   *string   `gorm:"size:32" json:"language"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
