package models

import "time"

// ItemRequest records a wish for an item nobody has listed yet. Items created
// in response point back via Item.RequestID.
type ItemRequest struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"type:text;not null"`
	RequestorID int64     `gorm:"column:requestor_id;not null;index"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	Requestor User `gorm:"foreignKey:RequestorID"`
}
