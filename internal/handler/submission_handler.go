package handler

import (
	"net/http"

	"github.com/farawebdata/backend/internal/metrics"
	"github.com/farawebdata/backend/internal/model"
	"github.com/farawebdata/backend/internal/repository"
	"github.com/farawebdata/backend/internal/service"
	"github.com/farawebdata/backend/internal/validation"
)

const submissionForm = "submit"

// SubmissionHandler handles the general message form and its read-back.
type SubmissionHandler struct {
	submissionService service.SubmissionService
}

// NewSubmissionHandler creates a SubmissionHandler with the given service.
func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// Submit handles POST /submit.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form validation.SubmissionForm
	if errs := decodeForm(w, r, &form); errs != nil {
		writeSubmitError(w, r, submissionForm, errs)
		return
	}

	sub, err := h.submissionService.Submit(r.Context(), form)
	if err != nil {
		writeSubmitError(w, r, submissionForm, err)
		return
	}

	metrics.RecordSubmission(submissionForm, metrics.OutcomeAccepted)
	writeJSON(w, r, http.StatusOK, submitResponse{
		Message:      "Submission successful",
		SubmissionID: sub.ID,
	})
}

// List handles GET /webapp/submissions.
func (h *SubmissionHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.submissionService.List(r.Context())
	if err != nil {
		writeListError(w, r, model.SubmissionsTable, err)
		return
	}

	// Return [] not null for empty lists
	if rows == nil {
		rows = []repository.Row{}
	}
	writeJSON(w, r, http.StatusOK, rows)
}
