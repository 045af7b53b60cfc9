package models

import "time"

// StartDateLayout matches the ISO-8601 form browsers produce for Date.toISOString.
const StartDateLayout = "2006-01-02T15:04:05.000Z07:00"

type User struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
}

func NewUser(name string, now time.Time) User {
	return User{
		Name:      name,
		StartDate: now.UTC().Format(StartDateLayout),
	}
}
