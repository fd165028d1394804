package api

import (
	"time"

	"github.com/goran-ethernal/ChainActivity/pkg/store"
)

// EventsResponse is a page of event rows.
type EventsResponse struct {
	Events     []*store.EventRow `json:"events"`
	Pagination PaginationResult  `json:"pagination"`
}

// UsersResponse is a page of users.
type UsersResponse struct {
	Users      []*store.UserRecord `json:"users"`
	Pagination PaginationResult    `json:"pagination"`
}

// PaginationResult contains pagination metadata.
type PaginationResult struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Store     bool      `json:"store_healthy"`
	LastBlock uint64    `json:"last_block"`
}
