package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Phaneesh28/project-backend/internal/domain"
)

func TestPostgresInsertError(t *testing.T) {
	dup := fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_key"})
	assert.ErrorIs(t, postgresInsertError(dup), domain.ErrAccountExists)

	notNull := &pgconn.PgError{Code: "23502"}
	assert.Same(t, notNull, postgresInsertError(notNull))

	boom := errors.New("connection reset")
	assert.Equal(t, boom, postgresInsertError(boom))
	assert.NoError(t, postgresInsertError(nil))
}

func TestMongoInsertError(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error collection: shop.users index: username_unique"}},
	}
	assert.ErrorIs(t, mongoInsertError(dup), domain.ErrAccountExists)

	other := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 121, Message: "Document failed validation"}}}
	assert.NotErrorIs(t, mongoInsertError(other), domain.ErrAccountExists)

	boom := errors.New("server selection timeout")
	assert.Equal(t, boom, mongoInsertError(boom))
	assert.NoError(t, mongoInsertError(nil))
}

func TestProductListOrderedByID(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "id", Value: 1}}, productListSort)
	assert.Contains(t, listProductsQuery, "ORDER BY id ASC")
}
