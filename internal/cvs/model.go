package cvs

import "time"

// CV is an uploaded base document owned by a user.
type CV struct {
	ID         string
	UserID     string
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	CreatedAt  time.Time
}
