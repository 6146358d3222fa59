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
	ErrEventNotFound          = errors.New("event not found")
	ErrEventTournamentInvalid = errors.New("event tournament reference is invalid")
)

const eventColumns = `id, tournament_id, gender, weapon, start_date, end_date, created_at`

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	ListByTournamentID(ctx context.Context, tournamentID int) ([]models.Event, error)
	Update(ctx context.Context, exec SQLExecutor, event *models.Event) error
	DeleteByTournamentIDAndID(ctx context.Context, tournamentID, id int) error
}

type sqlEventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &sqlEventRepository{db: db}
}

func (r *sqlEventRepository) Create(ctx context.Context, e *models.Event) error {
	query := r.db.Rebind(`
		INSERT INTO events (tournament_id, gender, weapon, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`)

	e.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowxContext(ctx, query,
		e.TournamentID, e.Gender, e.Weapon, e.StartDate, e.EndDate, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrEventTournamentInvalid
		}
		return err
	}
	return nil
}

func (r *sqlEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := r.db.Rebind(`SELECT ` + eventColumns + ` FROM events WHERE id = ?`)

	var e models.Event
	if err := sqlx.GetContext(ctx, r.db, &e, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *sqlEventRepository) ListByTournamentID(ctx context.Context, tournamentID int) ([]models.Event, error) {
	query := r.db.Rebind(`SELECT ` + eventColumns + ` FROM events WHERE tournament_id = ? ORDER BY start_date ASC, id ASC`)

	events := make([]models.Event, 0)
	if err := sqlx.SelectContext(ctx, r.db, &events, query, tournamentID); err != nil {
		return nil, err
	}
	return events, nil
}

// Update overwrites the mutable columns. tournament_id is never written.
func (r *sqlEventRepository) Update(ctx context.Context, exec SQLExecutor, e *models.Event) error {
	executor := executorOr(exec, r.db)
	query := executor.Rebind(`
		UPDATE events SET
			gender = ?,
			weapon = ?,
			start_date = ?,
			end_date = ?
		WHERE id = ?`)

	result, err := executor.ExecContext(ctx, query, e.Gender, e.Weapon, e.StartDate, e.EndDate, e.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEventNotFound)
}

// DeleteByTournamentIDAndID is a no-op when no event matches both ids.
func (r *sqlEventRepository) DeleteByTournamentIDAndID(ctx context.Context, tournamentID, id int) error {
	query := r.db.Rebind(`DELETE FROM events WHERE tournament_id = ? AND id = ?`)
	_, err := r.db.ExecContext(ctx, query, tournamentID, id)
	return err
}
