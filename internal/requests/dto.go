package requests

import (
	"time"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
)

// CreateInput is the payload for recording an item request.
type CreateInput struct {
	Description string `json:"description" validate:"required"`
}

// RequestedItem is the compact view of an item listed in response to a request.
type RequestedItem struct {
	ID      int64 `json:"id"`
	OwnerID int64 `json:"ownerId"`

	Name string `json:"name"`
}

// Response is the outward item request representation.
type Response struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Created     time.Time       `json:"created"`
	Items       []RequestedItem `json:"items"`
}

func toResponse(request *models.ItemRequest, items []models.Item) *Response {
	if request == nil {
		return nil
	}
	resp := &Response{
		ID:          request.ID,
		Description: request.Description,
		Created:     request.CreatedAt,
		Items:       []RequestedItem{},
	}
	for i := range items {
		resp.Items = append(resp.Items, RequestedItem{
			ID:      items[i].ID,
			OwnerID: items[i].OwnerID,
			Name:    items[i].Name,
		})
	}
	return resp
}
