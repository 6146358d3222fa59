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
	ErrTournamentNotFound = errors.New("tournament not found")
)

const tournamentColumns = `id, name, registration_start_date, registration_end_date,
	tournament_start_date, tournament_end_date, venue, created_at`

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	Exists(ctx context.Context, id int) (bool, error)
	List(ctx context.Context) ([]models.Tournament, error)
	ListByDate(ctx context.Context, day time.Time) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	Delete(ctx context.Context, id int) error
}

type sqlTournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) TournamentRepository {
	return &sqlTournamentRepository{db: db}
}

func (r *sqlTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := r.db.Rebind(`
		INSERT INTO tournaments (
			name, registration_start_date, registration_end_date,
			tournament_start_date, tournament_end_date, venue, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	t.CreatedAt = time.Now().UTC()
	return r.db.QueryRowxContext(ctx, query,
		t.Name, t.RegistrationStartDate, t.RegistrationEndDate,
		t.TournamentStartDate, t.TournamentEndDate, t.Venue, t.CreatedAt,
	).Scan(&t.ID)
}

func (r *sqlTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := r.db.Rebind(`SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = ?`)

	var t models.Tournament
	if err := sqlx.GetContext(ctx, r.db, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *sqlTournamentRepository) Exists(ctx context.Context, id int) (bool, error) {
	query := r.db.Rebind(`SELECT EXISTS (SELECT 1 FROM tournaments WHERE id = ?)`)
	var exists bool
	if err := r.db.QueryRowxContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *sqlTournamentRepository) List(ctx context.Context) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments ORDER BY tournament_start_date ASC, id ASC`

	tournaments := make([]models.Tournament, 0)
	if err := sqlx.SelectContext(ctx, r.db, &tournaments, query); err != nil {
		return nil, err
	}
	return tournaments, nil
}

// ListByDate returns tournaments whose tournament window contains day.
func (r *sqlTournamentRepository) ListByDate(ctx context.Context, day time.Time) ([]models.Tournament, error) {
	query := r.db.Rebind(`SELECT ` + tournamentColumns + ` FROM tournaments
		WHERE tournament_start_date <= ? AND tournament_end_date >= ?
		ORDER BY tournament_start_date ASC, id ASC`)

	d := models.DateOf(day)
	tournaments := make([]models.Tournament, 0)
	if err := sqlx.SelectContext(ctx, r.db, &tournaments, query, d, d); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *sqlTournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	query := r.db.Rebind(`
		UPDATE tournaments SET
			name = ?,
			registration_start_date = ?,
			registration_end_date = ?,
			tournament_start_date = ?,
			tournament_end_date = ?,
			venue = ?
		WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		t.Name, t.RegistrationStartDate, t.RegistrationEndDate,
		t.TournamentStartDate, t.TournamentEndDate, t.Venue,
		t.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

// Delete removes the tournament and, through the schema, its events. Deleting
// an absent id is not an error.
func (r *sqlTournamentRepository) Delete(ctx context.Context, id int) error {
	query := r.db.Rebind(`DELETE FROM tournaments WHERE id = ?`)
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
