package state

import (
	"sort"
	"strings"

	"inkpress/pkg/models"
)

// SortKey orders a refined listing.
type SortKey int

const (
	SortNewest SortKey = iota
	SortOldest
	SortTitleAsc
	SortTitleDesc
)

// Refine applies the display-only secondary filter and sort over a
// loaded listing: substring match across title, content and author
// name (case-insensitive) plus an optional status filter. It is a pure
// function over its inputs, returns a fresh slice and must be
// re-derived whenever any input changes; the stored state is never
// mutated.
func Refine(items []models.Article, search string, status models.Status, key SortKey) []models.Article {
	out := make([]models.Article, 0, len(items))
	term := strings.ToLower(strings.TrimSpace(search))
	for _, a := range items {
		if status != "" && a.Status != status {
			continue
		}
		if term != "" && !matches(a, term) {
			continue
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch key {
		case SortOldest:
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		case SortTitleAsc:
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		case SortTitleDesc:
			return strings.ToLower(out[i].Title) > strings.ToLower(out[j].Title)
		default: // SortNewest
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
	})
	return out
}

func matches(a models.Article, term string) bool {
	if strings.Contains(strings.ToLower(a.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(a.Content), term) {
		return true
	}
	if a.Author != nil && strings.Contains(strings.ToLower(a.Author.Name), term) {
		return true
	}
	return false
}

// Stats are the dashboard counts derived from a loaded listing.
type Stats struct {
	Total     int
	Published int
	Drafts    int
	Mine      int
}

// DeriveStats computes listing counts for the given actor. Pure;
// recomputed on every change to its inputs.
func DeriveStats(items []models.Article, actor *models.Actor) Stats {
	st := Stats{Total: len(items)}
	for _, a := range items {
		switch a.Status {
		case models.StatusPublished:
			st.Published++
		case models.StatusDraft:
			st.Drafts++
		}
		if actor != nil && a.AuthorID == actor.ID {
			st.Mine++
		}
	}
	return st
}
