package applications

import "time"

// Application links a candidate, a job and a tailored CV submitted by a user.
type Application struct {
	ID           string
	UserID       string
	CandidateID  string
	JobID        string
	TailoredCVID string
	Status       string
	AppliedAt    time.Time
	UpdatedAt    *time.Time
}

// Detail is an application enriched with display fields from related rows.
type Detail struct {
	Application
	JobTitle      string
	CandidateName string
	CVFileName    string
}

// AllowedStatuses are the application review states.
var AllowedStatuses = map[string]bool{
	"pending":     true,
	"reviewed":    true,
	"shortlisted": true,
	"rejected":    true,
	"hired":       true,
}
