package handler

import (
	"net/http"

	"github.com/farawebdata/backend/internal/metrics"
	"github.com/farawebdata/backend/internal/model"
	"github.com/farawebdata/backend/internal/repository"
	"github.com/farawebdata/backend/internal/service"
	"github.com/farawebdata/backend/internal/validation"
)

const (
	contactForm = "formus"

	// contactConfirmation reads "Your request was sent. Expect our call."
	contactConfirmation = "درخواست شما ارسال شد. منتظر تماس ما باشید"
)

// ContactHandler handles the preferences form and its read-back.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /formus.
// preferences must be an array whose members all belong to the vocabulary;
// an empty array is accepted.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form validation.ContactForm
	if errs := decodeForm(w, r, &form); errs != nil {
		writeSubmitError(w, r, contactForm, errs)
		return
	}

	req, err := h.contactService.Submit(r.Context(), form)
	if err != nil {
		writeSubmitError(w, r, contactForm, err)
		return
	}

	metrics.RecordSubmission(contactForm, metrics.OutcomeAccepted)
	writeJSON(w, r, http.StatusOK, submitResponse{
		Message:      contactConfirmation,
		SubmissionID: req.ID,
	})
}

// List handles GET /webapp/contactforms.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.contactService.List(r.Context())
	if err != nil {
		writeListError(w, r, model.ContactRequestsTable, err)
		return
	}

	if rows == nil {
		rows = []repository.Row{}
	}
	writeJSON(w, r, http.StatusOK, rows)
}
