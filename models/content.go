package models

import "time"

// Content holds one editable text value per (page, key) pair.
type Content struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Page      string    `gorm:"size:128;not null;index:idx_content_page_key,unique" json:"page"`
	Key       string    `gorm:"size:128;not null;index:idx_content_page_key,unique" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
