package services

import (
	"context"
	"errors"
	"strings"

	"github.com/siddharthaBojanki/greenCart/app/jobs"
	"github.com/siddharthaBojanki/greenCart/app/models"
	"github.com/siddharthaBojanki/greenCart/app/repositories"
	"github.com/siddharthaBojanki/greenCart/config"
	"github.com/siddharthaBojanki/greenCart/pkg/auth"
	"github.com/siddharthaBojanki/greenCart/pkg/logger"
	"github.com/siddharthaBojanki/greenCart/pkg/queue"
)

// ErrInvalidCredentials is returned for any authentication failure. It never
// says which part was wrong.
var ErrInvalidCredentials = errors.New("services: invalid credentials")

// ErrEmailTaken is returned when registering with an existing email.
var ErrEmailTaken = errors.New("services: user already exists")

// AuthService signs users and the seller in and out.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates a user account, queues the welcome mail and returns the
// user with a fresh session token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  hash,
		CartItems: map[string]int{},
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return models.User{}, "", ErrEmailTaken
		}
		return models.User{}, "", err
	}

	if err := queue.Dispatch(&jobs.WelcomeMailJob{UserName: user.Name, Email: user.Email}); err != nil {
		logger.Warn("auth: welcome mail dispatch failed", "error", err)
	}

	token, err := auth.GenerateUserToken(user.ID.Hex())
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies a user's password and returns the user with a session
// token. Unknown emails and wrong passwords are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateUserToken(user.ID.Hex())
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Profile loads the user behind a validated session token.
func (s *AuthService) Profile(ctx context.Context, userID string) (models.User, error) {
	return s.users.FindByID(ctx, userID)
}

// SellerLogin checks the submitted credentials against the configured seller
// account and returns a seller session token.
func (s *AuthService) SellerLogin(email, password string) (string, error) {
	ok := auth.CheckSellerCredentials(
		config.SellerEmail(), config.SellerPassword(),
		email, password,
	)
	if !ok {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateSellerToken(config.SellerEmail())
}
