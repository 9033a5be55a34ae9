package handler

import (
	"github.com/alumnihub/alumni-network/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
	Token   string       `json:"token,omitempty"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listUsersResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// listResponse wraps unpaginated collections.
type listResponse[T any] struct {
	Data []T `json:"data"`
}

func newList[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Data: items}
}
