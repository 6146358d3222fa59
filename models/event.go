package models

import "time"

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderMixed  Gender = "MIXED"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderMixed:
		return true
	}
	return false
}

type WeaponType string

const (
	WeaponFoil  WeaponType = "FOIL"
	WeaponEpee  WeaponType = "EPEE"
	WeaponSabre WeaponType = "SABRE"
)

func (w WeaponType) Valid() bool {
	switch w {
	case WeaponFoil, WeaponEpee, WeaponSabre:
		return true
	}
	return false
}

// Event is a gender/weapon competition inside a tournament. TournamentID never
// changes after creation.
type Event struct {
	ID           int        `json:"id" db:"id"`
	TournamentID int        `json:"tournament_id" db:"tournament_id"`
	Gender       Gender     `json:"gender" db:"gender"`
	Weapon       WeaponType `json:"weapon" db:"weapon"`
	StartDate    time.Time  `json:"start_date" db:"start_date"`
	EndDate      time.Time  `json:"end_date" db:"end_date"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	Tournament     *Tournament     `json:"tournament,omitempty" db:"-"`
	Rankings       []PlayerRank    `json:"rankings,omitempty" db:"-"`
	KnockoutStages []KnockoutStage `json:"knockout_stages,omitempty" db:"-"`
}
