package routes

import (
	"time"

	"github.com/siddharthaBojanki/greenCart/app/controllers"
	"github.com/siddharthaBojanki/greenCart/pkg/middleware"
	"github.com/siddharthaBojanki/greenCart/pkg/router"
)

// RegisterAPI wires every storefront endpoint onto r.
func RegisterAPI(r *router.Router) error {
	seller := controllers.NewSellerController()
	user := controllers.NewUserController()
	product := controllers.NewProductController()
	cart := controllers.NewCartController()

	gql, err := controllers.NewGraphQLController()
	if err != nil {
		return err
	}

	api := r.Group("/api")

	// Seller session. Login is rate-limited against credential stuffing;
	// everything past it requires the seller cookie.
	sellerGroup := api.Group("/seller")
	sellerGroup.Post("/login", "seller.login", seller.Login,
		middleware.RateLimit(10, time.Minute))
	sellerGroup.Get("/is-auth", "seller.is-auth", seller.IsAuth, middleware.SellerAuth)
	sellerGroup.Post("/logout", "seller.logout", seller.Logout)

	// User accounts and session.
	userGroup := api.Group("/user")
	userGroup.Post("/register", "user.register", user.Register,
		middleware.RateLimit(10, time.Minute))
	userGroup.Post("/login", "user.login", user.Login,
		middleware.RateLimit(10, time.Minute))
	userGroup.Get("/is-auth", "user.is-auth", user.IsAuth, middleware.UserAuth)
	userGroup.Post("/logout", "user.logout", user.Logout)

	// Catalogue. Listing is public; mutations are seller only.
	productGroup := api.Group("/product")
	productGroup.Get("/list", "product.list", product.List)
	productGroup.Post("/id", "product.show", product.Show)
	productGroup.Post("/add", "product.add", product.Add, middleware.SellerAuth)
	productGroup.Post("/stock", "product.stock", product.SetStock, middleware.SellerAuth)

	// Cart persistence.
	api.Post("/cart/update", "cart.update", cart.Update, middleware.UserAuth)

	// Read-only catalogue queries.
	api.Post("/graphql", "graphql.query", gql.Query)

	return nil
}
