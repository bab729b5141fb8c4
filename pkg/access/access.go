// Package access holds the pure authorization predicates the rendering
// layer and the state machine consult before offering an action. The
// predicates are total functions over (actor, article) and must be
// re-evaluated at every decision point; neither input is stable across
// a login swap or an article reassignment, so results are never cached.
package access

import "inkpress/pkg/models"

// Named role sets matching the server's permission table.
var (
	CreateArticle  = []models.Role{models.RoleAdmin, models.RoleEditor}
	EditOwnArticle = []models.Role{models.RoleAdmin, models.RoleEditor}
	EditAnyArticle = []models.Role{models.RoleAdmin}
	DeleteArticle  = []models.Role{models.RoleAdmin}
	ViewArticles   = []models.Role{models.RoleAdmin, models.RoleEditor, models.RoleViewer}
)

// CanView reports whether the actor's role is in the required set.
// A nil actor can view nothing.
func CanView(actor *models.Actor, required []models.Role) bool {
	if actor == nil {
		return false
	}
	for _, r := range required {
		if actor.Role == r {
			return true
		}
	}
	return false
}

// CanCreate reports whether the actor may create articles.
func CanCreate(actor *models.Actor) bool {
	return CanView(actor, CreateArticle)
}

// CanEdit reports whether the actor may edit the given article.
// ADMIN edits anything; EDITOR edits only articles it authored.
func CanEdit(actor *models.Actor, article *models.Article) bool {
	if actor == nil || article == nil {
		return false
	}
	if actor.Role == models.RoleAdmin {
		return true
	}
	if actor.Role == models.RoleEditor && article.AuthorID == actor.ID {
		return true
	}
	return false
}

// CanDelete reports whether the actor may delete articles. Deletion is
// role-scoped only: EDITOR gets no ownership carve-out here, unlike
// CanEdit. Keep the asymmetry.
func CanDelete(actor *models.Actor) bool {
	return actor != nil && actor.Role == models.RoleAdmin
}
