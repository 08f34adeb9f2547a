package models

import "time"

// Item is a shareable thing listed by its owner.
type Item struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	Available   bool      `gorm:"not null;default:true"`
	OwnerID     int64     `gorm:"column:owner_id;not null;index"`
	RequestID   *int64    `gorm:"column:request_id;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Owner User `gorm:"foreignKey:OwnerID"`
}
