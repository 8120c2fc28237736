package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casebook/pkg/domain/model"
	"github.com/secmon-lab/casebook/pkg/service/summary"
	"github.com/secmon-lab/casebook/pkg/usecase"
	"github.com/secmon-lab/casebook/pkg/utils/errutil"
	"github.com/secmon-lab/casebook/pkg/utils/safe"
)

var (
	errCaseNotFound         = errors.New("case not found")
	errConfirmationRequired = errors.New("deletion requires confirm=true")
	errInvalidBody          = errors.New("invalid request body")
)

// maxBodySize bounds JSON request bodies; logos are bounded separately
const maxBodySize = 1 << 20

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any, limit int64) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(errInvalidBody, "failed to decode request body", goerr.V("cause", err.Error()))
	}
	return nil
}

// statusOf maps domain errors to HTTP status codes
func statusOf(err error) int {
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, model.ErrUnknownSection),
		errors.Is(err, model.ErrUnknownField),
		errors.Is(err, model.ErrInvalidFieldData),
		errors.Is(err, model.ErrDuplicateEntryID),
		errors.Is(err, usecase.ErrInvalidLogo):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrLogoTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errCaseNotFound):
		return http.StatusNotFound
	case errors.Is(err, errConfirmationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, usecase.ErrSummarizerNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, summary.ErrEmptyResponse),
		errors.Is(err, summary.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	errutil.HandleHTTP(ctx, w, err, statusOf(err))
}
