package jobs

import "time"

// Job is a posted job opening.
type Job struct {
	ID           string
	Title        string
	Company      string
	Description  string
	Location     string
	Type         string
	Requirements string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// AllowedStatuses are the job lifecycle states.
var AllowedStatuses = map[string]bool{
	"open":   true,
	"paused": true,
	"closed": true,
}
