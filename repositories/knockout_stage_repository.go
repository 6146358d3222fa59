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
	ErrKnockoutStageNotFound     = errors.New("knockout stage not found")
	ErrKnockoutStageEventInvalid = errors.New("knockout stage event reference is invalid")
)

type KnockoutStageRepository interface {
	Create(ctx context.Context, exec SQLExecutor, stage *models.KnockoutStage) error
	GetByID(ctx context.Context, id int) (*models.KnockoutStage, error)
	GetByEventIDAndID(ctx context.Context, eventID, id int) (*models.KnockoutStage, error)
	ListByEventID(ctx context.Context, eventID int) ([]models.KnockoutStage, error)
	Delete(ctx context.Context, eventID, id int) error
	DeleteByEventIDExcept(ctx context.Context, exec SQLExecutor, eventID int, keepIDs []int) error
}

type sqlKnockoutStageRepository struct {
	db *sqlx.DB
}

func NewKnockoutStageRepository(db *sqlx.DB) KnockoutStageRepository {
	return &sqlKnockoutStageRepository{db: db}
}

func (r *sqlKnockoutStageRepository) Create(ctx context.Context, exec SQLExecutor, s *models.KnockoutStage) error {
	executor := executorOr(exec, r.db)
	query := executor.Rebind(`INSERT INTO knockout_stages (event_id, created_at) VALUES (?, ?) RETURNING id`)

	s.CreatedAt = time.Now().UTC()
	if err := executor.QueryRowxContext(ctx, query, s.EventID, s.CreatedAt).Scan(&s.ID); err != nil {
		if isForeignKeyViolation(err) {
			return ErrKnockoutStageEventInvalid
		}
		return err
	}
	return nil
}

func (r *sqlKnockoutStageRepository) GetByID(ctx context.Context, id int) (*models.KnockoutStage, error) {
	query := r.db.Rebind(`SELECT id, event_id, created_at FROM knockout_stages WHERE id = ?`)
	return r.getOne(ctx, query, id)
}

func (r *sqlKnockoutStageRepository) GetByEventIDAndID(ctx context.Context, eventID, id int) (*models.KnockoutStage, error) {
	query := r.db.Rebind(`SELECT id, event_id, created_at FROM knockout_stages WHERE event_id = ? AND id = ?`)
	return r.getOne(ctx, query, eventID, id)
}

func (r *sqlKnockoutStageRepository) getOne(ctx context.Context, query string, args ...interface{}) (*models.KnockoutStage, error) {
	var s models.KnockoutStage
	if err := sqlx.GetContext(ctx, r.db, &s, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKnockoutStageNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sqlKnockoutStageRepository) ListByEventID(ctx context.Context, eventID int) ([]models.KnockoutStage, error) {
	query := r.db.Rebind(`SELECT id, event_id, created_at FROM knockout_stages WHERE event_id = ? ORDER BY id ASC`)

	stages := make([]models.KnockoutStage, 0)
	if err := sqlx.SelectContext(ctx, r.db, &stages, query, eventID); err != nil {
		return nil, err
	}
	return stages, nil
}

func (r *sqlKnockoutStageRepository) Delete(ctx context.Context, eventID, id int) error {
	query := r.db.Rebind(`DELETE FROM knockout_stages WHERE event_id = ? AND id = ?`)

	result, err := r.db.ExecContext(ctx, query, eventID, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrKnockoutStageNotFound)
}

// DeleteByEventIDExcept removes every stage of the event whose id is not in keepIDs.
func (r *sqlKnockoutStageRepository) DeleteByEventIDExcept(ctx context.Context, exec SQLExecutor, eventID int, keepIDs []int) error {
	executor := executorOr(exec, r.db)

	if len(keepIDs) == 0 {
		_, err := executor.ExecContext(ctx, executor.Rebind(`DELETE FROM knockout_stages WHERE event_id = ?`), eventID)
		return err
	}

	query, args, err := sqlx.In(`DELETE FROM knockout_stages WHERE event_id = ? AND id NOT IN (?)`, eventID, keepIDs)
	if err != nil {
		return err
	}
	_, err = executor.ExecContext(ctx, executor.Rebind(query), args...)
	return err
}
