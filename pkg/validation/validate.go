// Package validation checks article drafts before any write request is
// issued. Failures are reported per-field and synchronously; they never
// reach the transport or the slice error state.
package validation

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"inkpress/pkg/models"
)

// MinTitleLen is the minimum title length after trimming.
const MinTitleLen = 3

// FieldErrors maps a field name to a human-readable problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "valid"
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// ValidateFields validates a draft for create or update. A nil return
// means the draft may be sent.
func ValidateFields(f models.ArticleFields) FieldErrors {
	errs := FieldErrors{}

	title := strings.TrimSpace(f.Title)
	if title == "" {
		errs["title"] = "title is required"
	} else if len([]rune(title)) < MinTitleLen {
		errs["title"] = "title must be at least 3 characters"
	}

	if EmptyMarkup(f.Content) {
		errs["content"] = "content is required"
	}

	if f.Status != "" && f.Status != models.StatusDraft && f.Status != models.StatusPublished {
		errs["status"] = "status must be DRAFT or PUBLISHED"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// EmptyMarkup reports whether rich-text markup carries no actual
// content. The editor widget emits "<p><br></p>" for an empty
// document; anything whose text nodes are all whitespace and which
// embeds no media counts as empty too.
func EmptyMarkup(markup string) bool {
	s := strings.TrimSpace(markup)
	if s == "" || s == "<p><br></p>" {
		return true
	}
	tokenizer := html.NewTokenizerFragment(strings.NewReader(s), "body")
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			// assuming tokenizer.Err() == io.EOF
			return true
		case html.TextToken:
			if strings.TrimSpace(string(tokenizer.Text())) != "" {
				return false
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "img", "video", "iframe", "embed":
				// media-only documents are content
				return false
			}
		}
	}
}
