package db

import (
	"fmt"
	"time"
)

// Table definitions below are the single source of truth for the schema.
// Repositories query these tables directly through sqlx.

type tournamentTable struct {
	ID                    int       `gorm:"primaryKey;autoIncrement"`
	Name                  string    `gorm:"size:255;not null"`
	RegistrationStartDate time.Time `gorm:"not null"`
	RegistrationEndDate   time.Time `gorm:"not null"`
	TournamentStartDate   time.Time `gorm:"not null;index"`
	TournamentEndDate     time.Time `gorm:"not null;index"`
	Venue                 *string   `gorm:"size:255"`
	CreatedAt             time.Time `gorm:"not null"`

	Events []eventTable `gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE"`
}

func (tournamentTable) TableName() string { return "tournaments" }

type eventTable struct {
	ID           int       `gorm:"primaryKey;autoIncrement"`
	TournamentID int       `gorm:"not null;index"`
	Gender       string    `gorm:"size:16;not null"`
	Weapon       string    `gorm:"size:16;not null"`
	StartDate    time.Time `gorm:"not null"`
	EndDate      time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`

	KnockoutStages []knockoutStageTable `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Rankings       []playerRankTable    `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}

func (eventTable) TableName() string { return "events" }

type knockoutStageTable struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	EventID   int       `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (knockoutStageTable) TableName() string { return "knockout_stages" }

type playerTable struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	Username  string    `gorm:"size:100;not null;uniqueIndex:players_username_key"`
	Email     *string   `gorm:"size:255"`
	PhotoKey  *string   `gorm:"size:512"`
	CreatedAt time.Time `gorm:"not null"`

	Ranks []playerRankTable `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

func (playerTable) TableName() string { return "players" }

type playerRankTable struct {
	ID       int `gorm:"primaryKey;autoIncrement"`
	EventID  int `gorm:"not null;uniqueIndex:player_ranks_event_player_key"`
	PlayerID int `gorm:"not null;uniqueIndex:player_ranks_event_player_key"`
	Score    int `gorm:"not null;default:0"`
}

func (playerRankTable) TableName() string { return "player_ranks" }

type userTable struct {
	ID           int       `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"size:100;not null;uniqueIndex:users_username_key"`
	PasswordHash string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:16;not null;default:'USER'"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (userTable) TableName() string { return "users" }

// Migrate creates or updates every table, index and foreign key.
func (d *Database) Migrate() error {
	if err := d.ORM.AutoMigrate(
		&tournamentTable{},
		&eventTable{},
		&knockoutStageTable{},
		&playerTable{},
		&playerRankTable{},
		&userTable{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
