package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/app/repositories"
	"github.com/siddharthaBojanki/greenCart/app/services"
	"github.com/siddharthaBojanki/greenCart/pkg/bind"
	"github.com/siddharthaBojanki/greenCart/pkg/response"
	"github.com/siddharthaBojanki/greenCart/pkg/validate"
)

// maxUploadBytes caps a product-add request, images included.
const maxUploadBytes = 20 << 20

// ProductController serves and mutates the catalogue over HTTP.
type ProductController struct {
	service *services.CatalogueService
}

func NewProductController() *ProductController {
	return &ProductController{service: services.NewCatalogueService()}
}

// List returns the whole catalogue.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context())
	if err != nil {
		response.Fail(w, "Could not load products")
		return
	}
	response.Success(w, response.M{"products": products})
}

// Show returns one product by id.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.service.Find(r.Context(), body.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.Fail(w, "Product not found")
			return
		}
		response.Fail(w, "Could not load product")
		return
	}
	response.Success(w, response.M{"product": product})
}

// addProductInput is the "productData" JSON field of the multipart form.
type addProductInput struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Description []string `json:"description"`
	Category    string   `json:"category" validate:"required"`
	Price       float64  `json:"price" validate:"required,gte=0"`
	OfferPrice  float64  `json:"offerPrice" validate:"required,gte=0"`
}

// Add creates a product from a multipart form: a "productData" JSON field
// plus one or more "images" file parts. Seller only.
func (c *ProductController) Add(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Fail(w, "Invalid upload")
		return
	}

	var input addProductInput
	if err := json.Unmarshal([]byte(r.FormValue("productData")), &input); err != nil {
		response.Fail(w, "Invalid product data")
		return
	}
	if errs := validate.Struct(&input); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}
	if input.OfferPrice > input.Price {
		response.Fail(w, "Offer price cannot exceed price")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		response.Fail(w, "At least one image is required")
		return
	}

	images := make([]services.NamedReader, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.Fail(w, "Could not read image")
			return
		}
		defer f.Close()
		images = append(images, services.NamedReader{Filename: fh.Filename, Reader: f})
	}

	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		OfferPrice:  input.OfferPrice,
	}
	if err := c.service.Add(r.Context(), &product, images); err != nil {
		response.Fail(w, "Could not add product")
		return
	}
	response.Success(w, response.M{"message": "Product Added", "product": product})
}

// SetStock flips a product's availability. Seller only.
func (c *ProductController) SetStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID      string `json:"id" validate:"required"`
		InStock *bool  `json:"inStock" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.service.SetStock(r.Context(), body.ID, *body.InStock); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.Fail(w, "Product not found")
			return
		}
		response.Fail(w, "Could not update stock")
		return
	}
	response.Message(w, "Stock Updated")
}
