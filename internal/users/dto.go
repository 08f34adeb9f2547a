package users

import (
	"time"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
)

// CreateInput is the payload for registering a user.
type CreateInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateInput is the partial-update payload; nil fields are left untouched.
type UpdateInput struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// Response is the outward user representation.
type Response struct {
	ID      int64     `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Created time.Time `json:"created"`
}

func toResponse(user *models.User) *Response {
	if user == nil {
		return nil
	}
	return &Response{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Created: user.CreatedAt,
	}
}

func toResponses(users []models.User) []Response {
	out := make([]Response, 0, len(users))
	for i := range users {
		out = append(out, *toResponse(&users[i]))
	}
	return out
}
