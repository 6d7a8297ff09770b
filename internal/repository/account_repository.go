package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Phaneesh28/project-backend/internal/domain"
)

const pgUniqueViolation = "23505"

type postgresAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &postgresAccountRepository{pool: pool}
}

const accountCols = `username, email, phone, password_hash, created_at`

func (r *postgresAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	const q = `SELECT ` + accountCols + ` FROM users WHERE username = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var a domain.Account
	err := r.pool.QueryRow(ctx, q, username).Scan(
		&a.Username, &a.Email, &a.Phone, &a.PasswordHash, &a.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	const q = `
		INSERT INTO users (username, email, phone, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx, q, account.Username, account.Email, account.Phone, account.PasswordHash, account.CreatedAt)
	return postgresInsertError(err)
}

// postgresInsertError maps a unique violation on users to ErrAccountExists.
func postgresInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return domain.ErrAccountExists
	}
	return err
}
