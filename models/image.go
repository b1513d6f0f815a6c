package models

import "time"

// Image stores uploaded images base64-encoded at rest, keyed by (page, key)
// like Content. The 5MB upload cap keeps rows within MEDIUMTEXT range.
type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Page      string    `gorm:"size:128;not null;index:idx_image_page_key,unique" json:"page"`
	Key       string    `gorm:"size:128;not null;index:idx_image_page_key,unique" json:"key"`
	Data      string    `gorm:"type:mediumtext;not null" json:"-"`
	MimeType  string    `gorm:"size:64;not null" json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
