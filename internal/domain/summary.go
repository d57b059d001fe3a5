package domain

import "time"

// CategorySummary is the unsigned total of one category within a report view
// Percentage is a fraction of the group total, set only for the wealth view
type CategorySummary struct {
	Category   Category
	Total      float64
	Percentage *float64
}

// ProjectionPoint is the projected aggregate value at a month offset
type ProjectionPoint struct {
	Month int
	Value float64
}

// Reminder is a check-in notification
type Reminder struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
}
