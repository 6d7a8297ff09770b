package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Phaneesh28/project-backend/internal/domain"
)

const usersCollection = "users"

type mongoAccountRepository struct {
	coll *mongo.Collection
}

// NewMongoAccountRepository binds to the users collection and makes sure the
// unique username index exists.
func NewMongoAccountRepository(ctx context.Context, db *mongo.Database) (AccountRepository, error) {
	coll := db.Collection(usersCollection)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return nil, err
	}
	return &mongoAccountRepository{coll: coll}, nil
}

func (r *mongoAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var a domain.Account
	err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *mongoAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, account)
	return mongoInsertError(err)
}

func mongoInsertError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrAccountExists
	}
	return err
}
