package candidates

import "time"

// Candidate is a person who can be put forward for jobs.
type Candidate struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}
