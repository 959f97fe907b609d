package service

import (
	"context"

	"github.com/farawebdata/backend/internal/model"
	"github.com/farawebdata/backend/internal/repository"
	"github.com/farawebdata/backend/internal/sanitize"
	"github.com/farawebdata/backend/internal/validation"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	gateway   repository.Gateway
	validator *validation.Validator
}

// NewSubmissionService creates a SubmissionService backed by the given gateway.
func NewSubmissionService(gateway repository.Gateway, validator *validation.Validator) SubmissionService {
	return &submissionServiceImpl{gateway: gateway, validator: validator}
}

func (s *submissionServiceImpl) Submit(ctx context.Context, form validation.SubmissionForm) (*model.Submission, error) {
	if errs := s.validator.Submission(form); len(errs) > 0 {
		return nil, errs
	}

	sub := &model.Submission{
		Name:    sanitize.Text(form.Name),
		Mobile:  sanitize.Text(form.Mobile),
		Message: sanitize.Text(form.Message),
	}

	id, err := s.gateway.Insert(ctx, model.SubmissionsTable, sub.Columns(), sub.Values())
	if err != nil {
		return nil, err
	}
	sub.ID = id
	return sub, nil
}

func (s *submissionServiceImpl) List(ctx context.Context) ([]repository.Row, error) {
	return s.gateway.SelectAll(ctx, model.SubmissionsTable)
}
