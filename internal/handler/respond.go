package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/farawebdata/backend/internal/metrics"
	"github.com/farawebdata/backend/internal/validation"
)

// maxBodyBytes caps request bodies on the form endpoints.
const maxBodyBytes = 1 << 20

const databaseErrorMessage = "Database error"

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Errors validation.Errors `json:"errors"`
}

type submitResponse struct {
	Message      string `json:"message"`
	SubmissionID int64  `json:"submissionId"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.WarnContext(r.Context(), "failed to write response", "error", err)
	}
}

// decodeForm decodes the JSON body into dst. A body that does not parse into
// the form's structure is reported as violations, like a failed field rule.
func decodeForm(w http.ResponseWriter, r *http.Request, dst any) validation.Errors {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return validation.Malformed(typeErr.Field)
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return validation.Errors{{Field: "body", Message: "Request body is too large."}}
		}
		return validation.Malformed("")
	}
	// The body must hold exactly one JSON value.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return validation.Malformed("")
	}
	return nil
}

// writeSubmitError answers a failed form submission: 400 with every violation
// for validation errors, otherwise a generic 500 with the cause logged only.
func writeSubmitError(w http.ResponseWriter, r *http.Request, form string, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		metrics.RecordSubmission(form, metrics.OutcomeRejected)
		writeJSON(w, r, http.StatusBadRequest, validationResponse{Errors: verrs})
		return
	}

	metrics.RecordSubmission(form, metrics.OutcomeFailed)
	slog.ErrorContext(r.Context(), "error inserting data", "form", form, "error", err)
	writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: databaseErrorMessage})
}

// writeListError answers a failed read-back with a generic 500.
func writeListError(w http.ResponseWriter, r *http.Request, table string, err error) {
	slog.ErrorContext(r.Context(), "error fetching rows", "table", table, "error", err)
	writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: databaseErrorMessage})
}
