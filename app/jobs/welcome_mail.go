// Package jobs defines the background jobs the storefront dispatches.
package jobs

import (
	"context"
	"fmt"

	"github.com/siddharthaBojanki/greenCart/pkg/mail"
	"github.com/siddharthaBojanki/greenCart/pkg/queue"
)

const welcomeMailJobName = "mail.welcome"

// WelcomeMailJob greets a freshly registered user.
type WelcomeMailJob struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
}

func (j *WelcomeMailJob) Name() string { return welcomeMailJobName }

func (j *WelcomeMailJob) Handle(ctx context.Context) error {
	body := fmt.Sprintf(
		"<h1>Welcome to GreenCart, %s!</h1><p>Fresh groceries are a click away.</p>",
		j.UserName,
	)
	return mail.To(j.Email).
		Subject("Welcome to GreenCart").
		Body(body).
		Send()
}

// RegisterAll registers every job type with the queue. Call once at boot.
func RegisterAll() {
	queue.Register(welcomeMailJobName, func() queue.Job { return &WelcomeMailJob{} })
}
