package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/anita-maxwynn/Django-Practice/pkg/pg"
)

// DBTX is the subset of pgxpool.Pool used by PgStorage.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	userColumns = `id, email, first_name, last_name, password_hash, is_active, is_staff, is_superuser, is_seller, is_customer, last_login_at, created_at, updated_at`

	insertUserQuery = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	selectUserByIDQuery    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	selectUserByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	updatePasswordHashQuery = `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	updateActiveQuery       = `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`
	updateLastLoginQuery    = `UPDATE users SET last_login_at = $2, updated_at = NOW() WHERE id = $1`
)

// PgStorage stores users in the PostgreSQL "users" table.
type PgStorage struct {
	db DBTX
}

func NewPgStorage(db DBTX) *PgStorage {
	return &PgStorage{db: db}
}

func (s *PgStorage) CreateUser(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx, insertUserQuery,
		u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash,
		u.IsActive, u.IsStaff, u.IsSuperuser, u.IsSeller, u.IsCustomer,
		u.LastLoginAt, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PgStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.getOne(ctx, selectUserByIDQuery, id)
}

func (s *PgStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.getOne(ctx, selectUserByEmailQuery, email)
}

func (s *PgStorage) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return s.exec(ctx, updatePasswordHashQuery, id, hash)
}

func (s *PgStorage) UpdateActive(ctx context.Context, id uuid.UUID, active bool) error {
	return s.exec(ctx, updateActiveQuery, id, active)
}

func (s *PgStorage) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return s.exec(ctx, updateLastLoginQuery, id, at)
}

func (s *PgStorage) getOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser, &u.IsSeller, &u.IsCustomer,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &u, nil
}

func (s *PgStorage) exec(ctx context.Context, query string, args ...any) error {
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

var _ Storage = (*PgStorage)(nil)
