package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/fencing-tournament/models"
)

var (
	ErrPlayerRankNotFound  = errors.New("player rank not found")
	ErrPlayerRankConflict  = errors.New("player is already ranked in this event")
	ErrPlayerRankReference = errors.New("player rank references a missing event or player")
)

type PlayerRankRepository interface {
	Create(ctx context.Context, exec SQLExecutor, rank *models.PlayerRank) error
	GetByEventIDAndPlayerID(ctx context.Context, eventID, playerID int) (*models.PlayerRank, error)
	ListByEventID(ctx context.Context, eventID int) ([]models.PlayerRank, error)
	UpdateScore(ctx context.Context, eventID, playerID, score int) error
	Delete(ctx context.Context, eventID, playerID int) error
}

type sqlPlayerRankRepository struct {
	db *sqlx.DB
}

func NewPlayerRankRepository(db *sqlx.DB) PlayerRankRepository {
	return &sqlPlayerRankRepository{db: db}
}

// rankRow is a player_ranks row joined with its player.
type rankRow struct {
	models.PlayerRank
	PlayerUsername  string    `db:"player_username"`
	PlayerEmail     *string   `db:"player_email"`
	PlayerPhotoKey  *string   `db:"player_photo_key"`
	PlayerCreatedAt time.Time `db:"player_created_at"`
}

func (row rankRow) toModel() models.PlayerRank {
	rank := row.PlayerRank
	rank.Player = &models.Player{
		ID:        row.PlayerID,
		Username:  row.PlayerUsername,
		Email:     row.PlayerEmail,
		PhotoKey:  row.PlayerPhotoKey,
		CreatedAt: row.PlayerCreatedAt,
	}
	return rank
}

const rankSelect = `
	SELECT pr.id, pr.event_id, pr.player_id, pr.score,
		p.username AS player_username, p.email AS player_email,
		p.photo_key AS player_photo_key, p.created_at AS player_created_at
	FROM player_ranks pr
	JOIN players p ON p.id = pr.player_id`

func (r *sqlPlayerRankRepository) Create(ctx context.Context, exec SQLExecutor, pr *models.PlayerRank) error {
	executor := executorOr(exec, r.db)
	query := executor.Rebind(`INSERT INTO player_ranks (event_id, player_id, score) VALUES (?, ?, ?) RETURNING id`)

	if err := executor.QueryRowxContext(ctx, query, pr.EventID, pr.PlayerID, pr.Score).Scan(&pr.ID); err != nil {
		switch {
		case isUniqueViolation(err, "player_ranks_event_player_key"):
			return ErrPlayerRankConflict
		case isForeignKeyViolation(err):
			return ErrPlayerRankReference
		}
		return err
	}
	return nil
}

func (r *sqlPlayerRankRepository) GetByEventIDAndPlayerID(ctx context.Context, eventID, playerID int) (*models.PlayerRank, error) {
	query := r.db.Rebind(rankSelect + ` WHERE pr.event_id = ? AND pr.player_id = ?`)

	var row rankRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, eventID, playerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerRankNotFound
		}
		return nil, err
	}
	rank := row.toModel()
	return &rank, nil
}

// ListByEventID returns the standings: highest score first, ties by player id.
func (r *sqlPlayerRankRepository) ListByEventID(ctx context.Context, eventID int) ([]models.PlayerRank, error) {
	query := r.db.Rebind(rankSelect + ` WHERE pr.event_id = ? ORDER BY pr.score DESC, pr.player_id ASC`)

	var rows []rankRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, eventID); err != nil {
		return nil, err
	}

	ranks := make([]models.PlayerRank, 0, len(rows))
	for _, row := range rows {
		ranks = append(ranks, row.toModel())
	}
	return ranks, nil
}

func (r *sqlPlayerRankRepository) UpdateScore(ctx context.Context, eventID, playerID, score int) error {
	query := r.db.Rebind(`UPDATE player_ranks SET score = ? WHERE event_id = ? AND player_id = ?`)

	result, err := r.db.ExecContext(ctx, query, score, eventID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerRankNotFound)
}

func (r *sqlPlayerRankRepository) Delete(ctx context.Context, eventID, playerID int) error {
	query := r.db.Rebind(`DELETE FROM player_ranks WHERE event_id = ? AND player_id = ?`)

	result, err := r.db.ExecContext(ctx, query, eventID, playerID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerRankNotFound)
}
