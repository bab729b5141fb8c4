package models

import "time"

// Status is the publication state of an article.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

// AuthorSummary is the denormalized author record the server joins
// into article responses. Optional; AuthorID is authoritative.
type AuthorSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Article is a single content record as returned by the server. The
// server assigns ID and timestamps on create and recomputes UpdatedAt
// on every update; the client never fabricates either.
type Article struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"` // rich-text markup
	Status    Status         `json:"status"`
	AuthorID  string         `json:"authorId"`
	Author    *AuthorSummary `json:"author,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ArticleFields is the writable subset of an article, sent on create
// and update.
type ArticleFields struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  Status `json:"status,omitempty"`
}
