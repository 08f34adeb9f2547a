package models

import "time"

// Comment is post-rental feedback left by a booker on an item.
type Comment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ItemID    int64     `gorm:"column:item_id;not null;index"`
	AuthorID  int64     `gorm:"column:author_id;not null;index"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	Author User `gorm:"foreignKey:AuthorID"`
}
