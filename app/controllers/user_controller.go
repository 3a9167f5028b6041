package controllers

import (
	"errors"
	"net/http"

	"github.com/siddharthaBojanki/greenCart/app/services"
	"github.com/siddharthaBojanki/greenCart/pkg/auth"
	"github.com/siddharthaBojanki/greenCart/pkg/bind"
	"github.com/siddharthaBojanki/greenCart/pkg/middleware"
	"github.com/siddharthaBojanki/greenCart/pkg/response"
)

// UserController handles shopper accounts and sessions.
type UserController struct {
	service *services.AuthService
}

func NewUserController() *UserController {
	return &UserController{service: services.NewAuthService()}
}

// Register creates an account and signs the user straight in.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Fail(w, err.Error())
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, token, err := c.service.Register(r.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			response.Fail(w, "User already exists")
			return
		}
		response.Fail(w, "Could not register")
		return
	}

	auth.SetSessionCookie(w, auth.UserCookie, token)
	response.Success(w, response.M{"user": user.Public()})
}

// Login verifies the password and sets the user session cookie.
func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
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

	user, token, err := c.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Fail(w, "Invalid Credentials")
			return
		}
		response.Fail(w, "Could not log in")
		return
	}

	auth.SetSessionCookie(w, auth.UserCookie, token)
	response.Success(w, response.M{"user": user.Public()})
}

// IsAuth returns the authenticated user, including the server-side cart the
// browser restores on page load. Runs behind UserAuth.
func (c *UserController) IsAuth(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Profile(r.Context(), userID)
	if err != nil {
		response.Unauthorized(w)
		return
	}
	response.Success(w, response.M{"user": user.Public()})
}

// Logout clears the user session cookie.
func (c *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, auth.UserCookie)
	response.Message(w, "Logged Out")
}
