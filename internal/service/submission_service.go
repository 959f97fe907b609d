package service

import (
	"context"

	"github.com/farawebdata/backend/internal/model"
	"github.com/farawebdata/backend/internal/repository"
	"github.com/farawebdata/backend/internal/validation"
)

// SubmissionService defines the business logic for the general message form.
type SubmissionService interface {
	// Submit validates, sanitizes and stores a submission. It returns
	// validation.Errors when any field rule fails (nothing is stored) and a
	// *repository.StorageError when the store fails.
	Submit(ctx context.Context, form validation.SubmissionForm) (*model.Submission, error)

	// List returns every stored submission row.
	List(ctx context.Context) ([]repository.Row, error)
}
