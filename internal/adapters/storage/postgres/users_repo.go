package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-marketplace/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

// Create confía en el índice único users_email_key para la atomicidad.
func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, password_hash,
			phone, address, user_type, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		u.ID,
		u.Name,
		users.NormalizeEmail(u.Email),
		u.PasswordHash,
		u.Phone,
		u.Address,
		string(u.UserType),
		u.CreatedAt,
	)
	if isUniqueViolation(err, "users_email_key") {
		return users.ErrEmailTaken
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectUsers+` WHERE id = $1`, id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = users.NormalizeEmail(email)
	if email == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, selectUsers+` WHERE lower(email) = $1`, email))
}

// ListByIDs trae en una sola query los usuarios pedidos (users.BatchReader).
func (r *UsersRepo) ListByIDs(ctx context.Context, ids []string) ([]users.User, error) {
	if len(ids) == 0 {
		return []users.User{}, nil
	}
	rows, err := r.db.QueryContext(ctx, selectUsers+` WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

const selectUsers = `
	SELECT
		id, name, email, password_hash,
		phone, address, user_type, created_at
	FROM users`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	var userType string
	if err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Phone,
		&u.Address,
		&userType,
		&u.CreatedAt,
	); err != nil {
		return users.User{}, err
	}
	u.UserType = users.UserType(userType)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (r *UsersRepo) scanOne(row *sql.Row) (users.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	return u, err
}
