package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a storefront account. CartItems maps product id → quantity and is
// overwritten wholesale on every cart sync.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name"          json:"name"`
	Email     string             `bson:"email"         json:"email"`
	Password  string             `bson:"password"      json:"-"` // bcrypt hash, never serialised
	CartItems map[string]int     `bson:"cartItems"     json:"cartItems"`
	CreatedAt time.Time          `bson:"createdAt"     json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"     json:"updatedAt"`
}

// Public returns the wire shape sent to the browser after auth calls.
func (u User) Public() map[string]interface{} {
	cart := u.CartItems
	if cart == nil {
		cart = map[string]int{}
	}
	return map[string]interface{}{
		"_id":       u.ID.Hex(),
		"name":      u.Name,
		"email":     u.Email,
		"cartItems": cart,
	}
}
