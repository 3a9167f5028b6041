package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/pkg/database"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("repositories: not found")

// ErrDuplicateEmail is returned when a create collides with the unique email
// index.
var ErrDuplicateEmail = errors.New("repositories: email already registered")

// UserRepository handles the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{coll: database.Collection("users")}
}

// FindByEmail looks up a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, ErrNotFound
	}
	return user, err
}

// FindByID looks up a user by hex object id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return user, ErrNotFound
	}

	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return user, ErrNotFound
	}
	return user, err
}

// Create inserts a new user and fills in its generated id.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.CartItems == nil {
		user.CartItems = map[string]int{}
	}

	res, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// UpdateCart overwrites the user's stored cart with items. The whole map is
// replaced, never merged.
func (r *UserRepository) UpdateCart(ctx context.Context, userID string, items map[string]int) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return ErrNotFound
	}
	if items == nil {
		items = map[string]int{}
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"cartItems": items,
			"updatedAt": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
