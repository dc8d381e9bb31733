package visibility

import "gorm.io/gorm"

// ForViewer returns a GORM scope restricting items to the ones listable by v.
// Hidden items are always excluded from listings; owners see their own
// postings whatever their scope, matching Listable.
func ForViewer(v Viewer) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_hidden = ?", false)
		scopes := AllowedScopes(v)
		switch {
		case scopes == nil:
		case v.IsAnonymous():
			db = db.Where("visibility IN ?", scopes)
		default:
			db = db.Where("(visibility IN ? OR user_id = ?)", scopes, v.UserID)
		}
		return db
	}
}
