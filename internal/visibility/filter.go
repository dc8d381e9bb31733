// Package visibility decides which items a viewer may read or list.
package visibility

import (
	"github.com/Adarsh-P-A/retrievo-backend/internal/models"
	"github.com/google/uuid"
)

// Viewer is the reader side of every visibility decision. The zero value is
// an anonymous viewer.
type Viewer struct {
	UserID      uuid.UUID
	Affiliation string
	IsAdmin     bool
}

func Anonymous() Viewer {
	return Viewer{}
}

// ForUser builds a viewer from the persisted user. A nil user is anonymous.
func ForUser(u *models.User) Viewer {
	if u == nil {
		return Anonymous()
	}
	return Viewer{
		UserID:      u.ID,
		Affiliation: u.Affiliation(),
		IsAdmin:     u.IsAdmin(),
	}
}

func (v Viewer) IsAnonymous() bool {
	return v.UserID == uuid.Nil
}

// Visible reports whether v may read item. Admins see everything and owners
// always see their own postings.
func Visible(item *models.Item, v Viewer) bool {
	if item == nil {
		return false
	}
	if v.IsAdmin {
		return true
	}
	if !v.IsAnonymous() && item.OwnedBy(v.UserID) {
		return true
	}
	if item.IsHidden {
		return false
	}
	return item.Visibility == models.VisibilityPublic ||
		(v.Affiliation != "" && item.Visibility == v.Affiliation)
}

// AllowedScopes lists the visibility values a listing for v may include.
// nil means every scope.
func AllowedScopes(v Viewer) []string {
	if v.IsAdmin {
		return nil
	}
	if v.Affiliation == "" {
		return []string{models.VisibilityPublic}
	}
	return []string{models.VisibilityPublic, v.Affiliation}
}

// Listable reports whether item belongs in a listing for v. It is Visible
// minus hidden items, so owners list their own postings in any scope.
func Listable(item *models.Item, v Viewer) bool {
	return item != nil && !item.IsHidden && Visible(item, v)
}

// ScopeAllowed reports whether visibility value s is in AllowedScopes(v).
func ScopeAllowed(v Viewer, s string) bool {
	scopes := AllowedScopes(v)
	if scopes == nil {
		return true
	}
	for _, allowed := range scopes {
		if allowed == s {
			return true
		}
	}
	return false
}
