package tailoring

import "time"

// TailoredCV is the persisted outcome of one tailoring run for a
// (user, base CV, job) triple.
type TailoredCV struct {
	ID            string
	UserID        string
	CVID          string
	JobID         string
	JobTitle      string
	FileName      string
	StorageKey    string
	Summary       string
	AIGenerated   bool
	CreatedAt     time.Time
	RegeneratedAt *time.Time
}
