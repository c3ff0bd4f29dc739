// Package apitypes holds the JSON payload types exchanged with the console
// backend. Responses carry a data payload and, for paginated lists,
// pagination metadata.
package apitypes

// Envelope is the standard response wrapper of the backend API.
type Envelope[T any] struct {
	Data       T     `json:"data"`
	Pagination *Page `json:"pagination,omitempty"`
}

// Page carries pagination metadata for list responses.
type Page struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
