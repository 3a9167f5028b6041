package controllers

import (
	"errors"
	"net/http"

	"github.com/siddharthaBojanki/greenCart/app/repositories"
	"github.com/siddharthaBojanki/greenCart/app/services"
	"github.com/siddharthaBojanki/greenCart/pkg/bind"
	"github.com/siddharthaBojanki/greenCart/pkg/middleware"
	"github.com/siddharthaBojanki/greenCart/pkg/response"
)

// CartController persists the browser's cart. Runs behind UserAuth.
type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{service: services.NewCartService()}
}

// Update replaces the stored cart with the submitted map. A missing
// cartItems field clears the cart.
func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body struct {
		CartItems map[string]int `json:"cartItems"`
	}
	if _, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, err.Error())
		return
	}
	if body.CartItems == nil {
		body.CartItems = map[string]int{}
	}

	if err := c.service.Update(r.Context(), userID, body.CartItems); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.Unauthorized(w)
			return
		}
		response.Fail(w, "Could not update cart")
		return
	}
	response.Message(w, "Cart Updated")
}
