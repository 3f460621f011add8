package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/niksmo/shopcart/internal/core/domain"
	"github.com/niksmo/shopcart/internal/core/port"
)

const (
	errBadRequest  = "BAD_REQUEST"
	errInternal    = "INTERNAL"
	errUnavailable = "UNAVAILABLE"
)

const maxBodyBytes = 1 << 20

// NewValidator returns the validator used for request bodies.
func NewValidator() *validatorv10.Validate {
	return validatorv10.New()
}

// decodeAndValidate reads a JSON body into out and validates its tags.
func decodeAndValidate(
	w http.ResponseWriter, r *http.Request, v *validatorv10.Validate, out any,
) error {
	if err := decode(w, r, out); err != nil {
		return err
	}
	return validate(v, out)
}

func decode(w http.ResponseWriter, r *http.Request, out any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid JSON data: %w", err)
	}
	return nil
}

func validate(v *validatorv10.Validate, s any) error {
	if err := v.Struct(s); err != nil {
		return errors.New(validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: failed on %q", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "op", op, "err", err)
	}
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   errBadRequest,
		Message: err.Error(),
	})
}

// writeError maps a service error to a status and an error body.
func writeError(w http.ResponseWriter, op string, err error) {
	log := slog.With("op", op)

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, kindStatus(verr.Kind), ErrorResponse{
			Error:   string(verr.Kind),
			Message: verr.Message,
		})
	case errors.Is(err, port.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   string(domain.ErrNotFound),
			Message: "resource not found",
		})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn("request aborted", "err", err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: errUnavailable})
	default:
		log.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: errInternal})
	}
}

func kindStatus(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrNotFound, domain.ErrProductNotFound:
		return http.StatusNotFound
	case domain.ErrDuplicated, domain.ErrCartOutOfStock:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}
