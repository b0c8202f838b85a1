package domain

import "time"

// Vehicle is a rentable unit of the fleet. Registration is unique across the
// fleet and indexed for search.
type Vehicle struct {
	ID           string    `json:"id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Registration string    `json:"registration"`
	Year         int       `json:"year"`
	DailyRate    float64   `json:"dailyRate"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
