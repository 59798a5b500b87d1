package repository

import "time"

// Greeting represents a greeting row.
type Greeting struct {
	ID        string
	Name      string
	Message   string
	CreatedAt time.Time
}
