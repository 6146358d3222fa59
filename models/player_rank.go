package models

// PlayerRank связывает игрока с событием и хранит его счёт.
type PlayerRank struct {
	ID       int `json:"id" db:"id"`
	EventID  int `json:"event_id" db:"event_id"`
	PlayerID int `json:"player_id" db:"player_id"`
	Score    int `json:"score" db:"score"`

	Player *Player `json:"player,omitempty" db:"-"`
}
