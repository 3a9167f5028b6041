package controllers

import (
	"errors"
	"net/http"

	"github.com/siddharthaBojanki/greenCart/app/services"
	"github.com/siddharthaBojanki/greenCart/pkg/auth"
	"github.com/siddharthaBojanki/greenCart/pkg/bind"
	"github.com/siddharthaBojanki/greenCart/pkg/response"
)

// SellerController authenticates the single configured seller account.
type SellerController struct {
	service *services.AuthService
}

func NewSellerController() *SellerController {
	return &SellerController{service: services.NewAuthService()}
}

// Login checks the submitted credentials against configuration and sets the
// seller session cookie. A mismatch is a normal {success:false} reply, not
// an error status.
func (c *SellerController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.service.SellerLogin(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(w, "Invalid Credentials")
			return
		}
		response.Fail(w, err.Error())
		return
	}

	auth.SetSessionCookie(w, auth.SellerCookie, token)
	response.Message(w, "Logged in")
}

// IsAuth runs behind SellerAuth, so reaching it means the cookie is valid.
func (c *SellerController) IsAuth(w http.ResponseWriter, r *http.Request) {
	response.Success(w, nil)
}

// Logout clears the seller cookie with the same attributes it was set with,
// otherwise the browser keeps the stale cookie.
func (c *SellerController) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, auth.SellerCookie)
	response.Message(w, "Logged Out")
}
