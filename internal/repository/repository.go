// Package repository holds the storage interfaces used by the services and
// their MongoDB, PostgreSQL and Redis implementations.
package repository

import (
	"context"
	"time"

	"github.com/Phaneesh28/project-backend/internal/domain"
)

const queryTimeout = 3 * time.Second

// AccountRepository is the credential store. FindByUsername returns
// (nil, nil) when no account matches. Create returns domain.ErrAccountExists
// when the username is already taken.
type AccountRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) error
}

// ProductRepository is a read-only view of the catalog. FindByID returns
// (nil, nil) when no product matches.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
}

type RateLimitRepository interface {
	CheckRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error)
}
