// Package transport is the HTTP collaborator the state machine
// delegates to. It issues one request per call, attaches the bearer
// credential from the session, and converts every failure into a
// typed Error so nothing leaks past the state machine boundary.
package transport

import (
	"context"

	"inkpress/pkg/models"
)

// Filters narrows an authenticated article listing. Zero values are
// omitted from the query.
type Filters struct {
	Status models.Status
	Search string
}

// ListResult is one page of articles with the server-computed pager.
type ListResult struct {
	Items      []models.Article  `json:"articles"`
	Pagination models.Pagination `json:"pagination"`
}

// LoginResult carries the actor and bearer token returned on login or
// register.
type LoginResult struct {
	Actor models.Actor `json:"user"`
	Token string       `json:"token"`
}

// Articles is the article-side collaborator contract consumed by the
// state machine.
type Articles interface {
	ListArticles(ctx context.Context, page, limit int, f Filters) (ListResult, error)
	ListPublicArticles(ctx context.Context, page, limit int) (ListResult, error)
	ListMyArticles(ctx context.Context, page, limit int) (ListResult, error)
	GetArticle(ctx context.Context, id string) (models.Article, error)
	CreateArticle(ctx context.Context, fields models.ArticleFields) (models.Article, error)
	UpdateArticle(ctx context.Context, id string, fields models.ArticleFields) (models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
}

// Auth is the session-side collaborator contract.
type Auth interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Register(ctx context.Context, name, email, password string) (LoginResult, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (models.Actor, error)
	ChangePassword(ctx context.Context, current, next string) error
}

// TokenSource supplies the current bearer credential; an empty string
// means unauthenticated.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
