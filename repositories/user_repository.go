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
	ErrUserNotFound         = errors.New("user not found")
	ErrUserUsernameConflict = errors.New("user username conflict")
)

const userColumns = `id, username, password_hash, email, role, created_at`

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id int, role models.UserRole) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
}

type sqlUserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &sqlUserRepository{db: db}
}

func (r *sqlUserRepository) Create(ctx context.Context, user *models.User) error {
	query := r.db.Rebind(`
		INSERT INTO users (username, password_hash, email, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	user.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowxContext(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.Role, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return ErrUserUsernameConflict
		}
		return err
	}
	return nil
}

func (r *sqlUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	return r.getOne(ctx, query, id)
}

func (r *sqlUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	return r.getOne(ctx, query, username)
}

func (r *sqlUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	if err := sqlx.GetContext(ctx, r.db, &u, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *sqlUserRepository) List(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id ASC`

	users := make([]models.User, 0)
	if err := sqlx.SelectContext(ctx, r.db, &users, query); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *sqlUserRepository) UpdateRole(ctx context.Context, id int, role models.UserRole) error {
	query := r.db.Rebind(`UPDATE users SET role = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *sqlUserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := r.db.Rebind(`UPDATE users SET password_hash = ? WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}
