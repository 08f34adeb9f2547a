package items

import (
	"time"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
)

// CreateInput is the payload for listing an item.
type CreateInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId,omitempty" validate:"omitempty,gt=0"`
}

// UpdateInput is the partial-update payload; nil fields are left untouched.
type UpdateInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Available   *bool   `json:"available,omitempty"`
}

// CommentInput is the payload for post-rental feedback.
type CommentInput struct {
	Text string `json:"text" validate:"required,max=2048"`
}

// Response is the outward item representation.
type Response struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// BookingRef is the compact booking view embedded in the owner's item detail.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// CommentResponse is the outward comment representation.
type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// DetailResponse is the item view returned by GET /items/{id}: comments for
// everyone, last/next booking for the owner only.
type DetailResponse struct {
	Response
	LastBooking *BookingRef       `json:"lastBooking,omitempty"`
	NextBooking *BookingRef       `json:"nextBooking,omitempty"`
	Comments    []CommentResponse `json:"comments"`
}

func toResponse(item *models.Item) *Response {
	if item == nil {
		return nil
	}
	return &Response{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Available:   item.Available,
		OwnerID:     item.OwnerID,
		RequestID:   item.RequestID,
	}
}

func toResponses(items []models.Item) []Response {
	out := make([]Response, 0, len(items))
	for i := range items {
		out = append(out, *toResponse(&items[i]))
	}
	return out
}

func toBookingRef(booking *models.Booking) *BookingRef {
	if booking == nil {
		return nil
	}
	return &BookingRef{ID: booking.ID, BookerID: booking.BookerID}
}

func toCommentResponse(comment *models.Comment) *CommentResponse {
	if comment == nil {
		return nil
	}
	return &CommentResponse{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: comment.Author.Name,
		Created:    comment.CreatedAt,
	}
}

func toCommentResponses(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *toCommentResponse(&comments[i]))
	}
	return out
}
