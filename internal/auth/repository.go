package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Admin, error) {
	query := `SELECT id, email, name, password_hash, role, last_login_at, created_at, updated_at
		FROM admins WHERE id = $1`

	admin := &Admin{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash,
		&admin.Role, &admin.LastLoginAt, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying admin by id: %w", err)
	}
	return admin, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	query := `SELECT id, email, name, password_hash, role, last_login_at, created_at, updated_at
		FROM admins WHERE email = $1`

	admin := &Admin{}
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash,
		&admin.Role, &admin.LastLoginAt, &admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying admin by email: %w", err)
	}
	return admin, nil
}

func (r *postgresRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE admins SET last_login_at = $2, updated_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}
