package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue item. Price is the list price; OfferPrice is what
// the cart actually charges.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name"          json:"name"`
	Description []string           `bson:"description"   json:"description"`
	Category    string             `bson:"category"      json:"category"`
	Price       float64            `bson:"price"         json:"price"`
	OfferPrice  float64            `bson:"offerPrice"    json:"offerPrice"`
	Image       []string           `bson:"image"         json:"image"`
	InStock     bool               `bson:"inStock"       json:"inStock"`
	CreatedAt   time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"     json:"updatedAt"`
}
