package model

import "time"

type ContactSubmission struct {
	ID         int64
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	SourcePage string
	CreatedAt  time.Time
}
