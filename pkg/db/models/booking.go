package models

import (
	"time"

	"github.com/shareloop/shareloop-backend/pkg/enums"
)

// Booking reserves an item for the half-open interval [Start, End).
type Booking struct {
	ID        int64               `gorm:"primaryKey;autoIncrement"`
	ItemID    int64               `gorm:"column:item_id;not null;index"`
	BookerID  int64               `gorm:"column:booker_id;not null;index"`
	Start     time.Time           `gorm:"column:start_at;not null"`
	End       time.Time           `gorm:"column:end_at;not null"`
	Status    enums.BookingStatus `gorm:"type:text;not null;default:'WAITING'"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`

	Item   Item `gorm:"foreignKey:ItemID"`
	Booker User `gorm:"foreignKey:BookerID"`
}
