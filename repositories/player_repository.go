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
	ErrPlayerNotFound         = errors.New("player not found")
	ErrPlayerUsernameConflict = errors.New("player username conflict")
)

const playerColumns = `id, username, email, photo_key, created_at`

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetByUsername(ctx context.Context, username string) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	Update(ctx context.Context, player *models.Player) error
	UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error
	Delete(ctx context.Context, id int) error
}

type sqlPlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) PlayerRepository {
	return &sqlPlayerRepository{db: db}
}

func (r *sqlPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := r.db.Rebind(`INSERT INTO players (username, email, photo_key, created_at) VALUES (?, ?, ?, ?) RETURNING id`)

	p.CreatedAt = time.Now().UTC()
	if err := r.db.QueryRowxContext(ctx, query, p.Username, p.Email, p.PhotoKey, p.CreatedAt).Scan(&p.ID); err != nil {
		if isUniqueViolation(err, "players_username_key") {
			return ErrPlayerUsernameConflict
		}
		return err
	}
	return nil
}

func (r *sqlPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := r.db.Rebind(`SELECT ` + playerColumns + ` FROM players WHERE id = ?`)
	return r.getOne(ctx, query, id)
}

func (r *sqlPlayerRepository) GetByUsername(ctx context.Context, username string) (*models.Player, error) {
	query := r.db.Rebind(`SELECT ` + playerColumns + ` FROM players WHERE username = ?`)
	return r.getOne(ctx, query, username)
}

func (r *sqlPlayerRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Player, error) {
	var p models.Player
	if err := sqlx.GetContext(ctx, r.db, &p, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *sqlPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY username ASC`

	players := make([]models.Player, 0)
	if err := sqlx.SelectContext(ctx, r.db, &players, query); err != nil {
		return nil, err
	}
	return players, nil
}

func (r *sqlPlayerRepository) Update(ctx context.Context, p *models.Player) error {
	query := r.db.Rebind(`UPDATE players SET username = ?, email = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, p.Username, p.Email, p.ID)
	if err != nil {
		if isUniqueViolation(err, "players_username_key") {
			return ErrPlayerUsernameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *sqlPlayerRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	query := r.db.Rebind(`UPDATE players SET photo_key = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, photoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *sqlPlayerRepository) Delete(ctx context.Context, id int) error {
	query := r.db.Rebind(`DELETE FROM players WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
