package models

// Pagination describes one page of a server-side listing. The server
// recomputes it on every list response and the client treats it as
// authoritative; TotalPages is never derived locally.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// DefaultLimit is the page size used when the caller does not ask for
// a specific one.
const DefaultLimit = 10
