package domain

import "time"

type Notification struct {
	ID        string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
