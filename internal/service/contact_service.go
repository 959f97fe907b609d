package service

import (
	"context"

	"github.com/farawebdata/backend/internal/model"
	"github.com/farawebdata/backend/internal/repository"
	"github.com/farawebdata/backend/internal/validation"
)

// ContactService defines the business logic for the preferences form.
type ContactService interface {
	// Submit validates the form, joins the preference tags and stores the
	// request. Errors follow SubmissionService.Submit.
	Submit(ctx context.Context, form validation.ContactForm) (*model.ContactRequest, error)

	// List returns every stored contact request row.
	List(ctx context.Context) ([]repository.Row, error)
}
