package validation

import (
	"testing"

	"inkpress/pkg/models"
)

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name   string
		fields models.ArticleFields
		want   []string // offending field names, nil means valid
	}{
		{
			name:   "valid draft",
			fields: models.ArticleFields{Title: "Hello World", Content: "<p>Body text</p>", Status: models.StatusDraft},
		},
		{
			name:   "title too short",
			fields: models.ArticleFields{Title: "Hi", Content: "<p>ok</p>"},
			want:   []string{"title"},
		},
		{
			name:   "title only whitespace",
			fields: models.ArticleFields{Title: "   ", Content: "<p>ok</p>"},
			want:   []string{"title"},
		},
		{
			name:   "canonical empty content",
			fields: models.ArticleFields{Title: "Valid Title", Content: "<p><br></p>"},
			want:   []string{"content"},
		},
		{
			name:   "whitespace-only markup",
			fields: models.ArticleFields{Title: "Valid Title", Content: "<p>   </p><p></p>"},
			want:   []string{"content"},
		},
		{
			name:   "both invalid",
			fields: models.ArticleFields{Title: "", Content: ""},
			want:   []string{"title", "content"},
		},
		{
			name:   "bad status",
			fields: models.ArticleFields{Title: "Valid Title", Content: "<p>ok</p>", Status: "ARCHIVED"},
			want:   []string{"status"},
		},
		{
			name:   "image-only content is content",
			fields: models.ArticleFields{Title: "Valid Title", Content: `<p><img src="x.png"></p>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateFields(tt.fields)
			if tt.want == nil {
				if errs != nil {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			if len(errs) != len(tt.want) {
				t.Fatalf("expected %d errors, got %v", len(tt.want), errs)
			}
			for _, field := range tt.want {
				if _, ok := errs[field]; !ok {
					t.Fatalf("expected error on %q, got %v", field, errs)
				}
			}
		})
	}
}

func TestEmptyMarkup(t *testing.T) {
	empty := []string{"", "   ", "<p><br></p>", "<p></p>", "<div><p> \n </p></div>", "<br>"}
	for _, s := range empty {
		if !EmptyMarkup(s) {
			t.Errorf("EmptyMarkup(%q) = false, want true", s)
		}
	}
	nonEmpty := []string{"<p>x</p>", "plain text", `<img src="a.png">`, "<p><strong>b</strong></p>"}
	for _, s := range nonEmpty {
		if EmptyMarkup(s) {
			t.Errorf("EmptyMarkup(%q) = true, want false", s)
		}
	}
}
