package handler

import (
	"time"

	"github.com/kiitfinder/lostfound-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Items ---

// itemRequest and statusRequest are only decoded here. Field rules are
// enforced by the item service once the caller is authorized.
type itemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
	Reward      float64 `json:"reward"`
	ImageURL    string  `json:"image_url"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type itemResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Category    string         `json:"category"`
	Status      string         `json:"status"`
	Reward      float64        `json:"reward"`
	ImageURL    string         `json:"image_url,omitempty"`
	PostedBy    postedByResult `json:"posted_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type postedByResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// --- Accounts ---

type accountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toItemResponse(i *domain.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		Title:       i.Title,
		Description: i.Description,
		Location:    i.Location,
		Category:    i.Category,
		Status:      string(i.Status),
		Reward:      i.Reward,
		ImageURL:    i.ImageURL,
		PostedBy:    postedByResult{ID: i.PostedBy.ID, Name: i.PostedBy.Name},
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func toItemResponses(items []*domain.Item) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toItemResponse(i))
	}
	return out
}

func toAccountResponse(a *domain.Account) accountResponse {
	return accountResponse{
		ID:        a.ID,
		Name:      a.DisplayName,
		Email:     a.Identity,
		Role:      string(a.Role),
		CreatedAt: a.CreatedAt,
	}
}
