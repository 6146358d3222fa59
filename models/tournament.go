package models

import "time"

// Tournament представляет турнир: окно регистрации, окно проведения и площадку.
type Tournament struct {
	ID                    int       `json:"id" db:"id"`
	Name                  string    `json:"name" db:"name"`
	RegistrationStartDate time.Time `json:"registration_start_date" db:"registration_start_date"`
	RegistrationEndDate   time.Time `json:"registration_end_date" db:"registration_end_date"`
	TournamentStartDate   time.Time `json:"tournament_start_date" db:"tournament_start_date"`
	TournamentEndDate     time.Time `json:"tournament_end_date" db:"tournament_end_date"`
	Venue                 *string   `json:"venue,omitempty" db:"venue"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`

	Events []Event `json:"events,omitempty" db:"-"`
}

// IsHeldOn reports whether day falls inside the tournament window, inclusive.
func (t Tournament) IsHeldOn(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(t.TournamentStartDate)) && !d.After(DateOf(t.TournamentEndDate))
}

// DateOf truncates t to midnight of its UTC calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
