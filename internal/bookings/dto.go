package bookings

import (
	"time"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
	"github.com/shareloop/shareloop-backend/pkg/enums"
	"github.com/shareloop/shareloop-backend/pkg/pagination"
)

// CreateInput is the payload for requesting a booking.
type CreateInput struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required"`
}

// ListParams selects one side of the booking ledger for a subject.
type ListParams struct {
	SubjectID int64
	State     enums.BookingState
	Page      pagination.Page
}

// BookerRef is the embedded booker view inside a booking response.
type BookerRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemRef is the embedded item view inside a booking response.
type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Response is the outward booking representation.
type Response struct {
	ID     int64               `json:"id"`
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Status enums.BookingStatus `json:"status"`
	Booker BookerRef           `json:"booker"`
	Item   ItemRef             `json:"item"`
}

func toResponse(booking *models.Booking) *Response {
	if booking == nil {
		return nil
	}
	return &Response{
		ID:     booking.ID,
		Start:  booking.Start,
		End:    booking.End,
		Status: booking.Status,
		Booker: BookerRef{ID: booking.BookerID, Name: booking.Booker.Name},
		Item:   ItemRef{ID: booking.ItemID, Name: booking.Item.Name},
	}
}

func toResponses(bookings []models.Booking) []Response {
	out := make([]Response, 0, len(bookings))
	for i := range bookings {
		out = append(out, *toResponse(&bookings[i]))
	}
	return out
}
