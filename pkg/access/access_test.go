package access

import (
	"testing"

	"inkpress/pkg/models"
)

var (
	admin  = &models.Actor{ID: "u1", DisplayName: "Ada", Role: models.RoleAdmin}
	editor = &models.Actor{ID: "u2", DisplayName: "Ed", Role: models.RoleEditor}
	viewer = &models.Actor{ID: "u3", DisplayName: "Vi", Role: models.RoleViewer}
)

func TestCanView(t *testing.T) {
	if CanView(nil, ViewArticles) {
		t.Fatal("nil actor must not view")
	}
	if !CanView(viewer, ViewArticles) {
		t.Fatal("viewer should view articles")
	}
	if CanView(viewer, CreateArticle) {
		t.Fatal("viewer is not in the create set")
	}
}

func TestCanCreate(t *testing.T) {
	tests := []struct {
		actor *models.Actor
		want  bool
	}{
		{nil, false},
		{admin, true},
		{editor, true},
		{viewer, false},
	}
	for _, tt := range tests {
		if got := CanCreate(tt.actor); got != tt.want {
			t.Errorf("CanCreate(%v) = %v, want %v", tt.actor, got, tt.want)
		}
	}
}

func TestCanEdit(t *testing.T) {
	owned := &models.Article{ID: "a1", AuthorID: editor.ID}
	foreign := &models.Article{ID: "a2", AuthorID: "somebody-else"}

	// admin edits anything regardless of authorId
	if !CanEdit(admin, owned) || !CanEdit(admin, foreign) {
		t.Fatal("admin must edit any article")
	}
	// editor edits only own
	if !CanEdit(editor, owned) {
		t.Fatal("editor must edit own article")
	}
	if CanEdit(editor, foreign) {
		t.Fatal("editor must not edit foreign article")
	}
	// viewer edits nothing, even when it "owns" the record
	viewerOwned := &models.Article{ID: "a3", AuthorID: viewer.ID}
	if CanEdit(viewer, viewerOwned) {
		t.Fatal("viewer must never edit")
	}
	if CanEdit(nil, owned) {
		t.Fatal("nil actor must never edit")
	}
}

func TestCanDeleteIsRoleScopedOnly(t *testing.T) {
	if !CanDelete(admin) {
		t.Fatal("admin must delete")
	}
	if CanDelete(viewer) || CanDelete(nil) {
		t.Fatal("viewer/nil must not delete")
	}
	// an editor owning the article still cannot delete; ownership is
	// an edit-side concept only
	if CanDelete(editor) {
		t.Fatal("editor must not delete, even as author")
	}
}

func TestGuard(t *testing.T) {
	tests := []struct {
		name     string
		actor    *models.Actor
		required []models.Role
		want     Decision
	}{
		{"unauthenticated", nil, nil, RedirectToLogin},
		{"unauthenticated with roles", nil, DeleteArticle, RedirectToLogin},
		{"authenticated no requirement", viewer, nil, Allow},
		{"role satisfied", editor, CreateArticle, Allow},
		{"role missing", viewer, CreateArticle, RedirectToDefault},
		{"admin only", editor, DeleteArticle, RedirectToDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Guard(tt.actor, tt.required); got != tt.want {
				t.Fatalf("Guard = %v, want %v", got, tt.want)
			}
		})
	}
}
