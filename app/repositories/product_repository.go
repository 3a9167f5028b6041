package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/pkg/database"
)

// ProductRepository handles the products collection.
type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{coll: database.Collection("products")}
}

// All returns the whole catalogue, newest first.
func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ByCategory returns products in one category, newest first.
func (r *ProductRepository) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	cur, err := r.coll.Find(ctx, bson.M{"category": category},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID looks up a product by hex object id.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (models.Product, error) {
	var product models.Product

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, ErrNotFound
	}

	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return product, ErrNotFound
	}
	return product, err
}

// Create inserts a new product and fills in its generated id.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

// SetStock flips the inStock flag on one product.
func (r *ProductRepository) SetStock(ctx context.Context, id string, inStock bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"inStock":   inStock,
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

// InsertMany seeds multiple products at once.
func (r *ProductRepository) InsertMany(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(products))
	now := time.Now().UTC()
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
		docs = append(docs, products[i])
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}
