package service

import (
	"context"

	"github.com/farawebdata/backend/internal/model"
	"github.com/farawebdata/backend/internal/repository"
	"github.com/farawebdata/backend/internal/sanitize"
	"github.com/farawebdata/backend/internal/validation"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	gateway   repository.Gateway
	validator *validation.Validator
}

// NewContactService creates a ContactService backed by the given gateway.
func NewContactService(gateway repository.Gateway, validator *validation.Validator) ContactService {
	return &contactServiceImpl{gateway: gateway, validator: validator}
}

// Submit stores a contact request. Preference tags are already members of the
// vocabulary when they reach sanitize, so escaping leaves them unchanged.
func (s *contactServiceImpl) Submit(ctx context.Context, form validation.ContactForm) (*model.ContactRequest, error) {
	if errs := s.validator.ContactRequest(form); len(errs) > 0 {
		return nil, errs
	}

	req := &model.ContactRequest{
		Name:        sanitize.Text(form.Name),
		Mobile:      sanitize.Text(form.Mobile),
		Preferences: model.JoinPreferences(sanitize.Strings(form.Preferences.Tags)),
	}

	id, err := s.gateway.Insert(ctx, model.ContactRequestsTable, req.Columns(), req.Values())
	if err != nil {
		return nil, err
	}
	req.ID = id
	return req, nil
}

func (s *contactServiceImpl) List(ctx context.Context) ([]repository.Row, error) {
	return s.gateway.SelectAll(ctx, model.ContactRequestsTable)
}
