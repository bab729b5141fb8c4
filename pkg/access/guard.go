package access

import "inkpress/pkg/models"

// Decision is the outcome of a route guard check.
type Decision int

const (
	// Allow lets the requested view render.
	Allow Decision = iota
	// RedirectToLogin is returned for unauthenticated access.
	RedirectToLogin
	// RedirectToDefault is returned when the actor is authenticated
	// but lacks a required role.
	RedirectToDefault
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect_to_login"
	case RedirectToDefault:
		return "redirect_to_default"
	}
	return "unknown"
}

// Guard decides whether the current actor may enter a view. A nil
// required set means any authenticated actor qualifies.
func Guard(actor *models.Actor, required []models.Role) Decision {
	if actor == nil {
		return RedirectToLogin
	}
	if len(required) == 0 || CanView(actor, required) {
		return Allow
	}
	return RedirectToDefault
}
