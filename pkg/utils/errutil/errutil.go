package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
	"github.com/mgprofile/mgprofile/pkg/utils/safe"
)

// Handle logs the error with its goerr values and stack and reports it to
// Sentry. It returns err unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logError(ctx, msg, err)
	capture(ctx, err)
	return err
}

// StatusCode maps the error kind to an HTTP status
func StatusCode(err error) int {
	switch {
	case model.IsInvalidInput(err):
		return http.StatusBadRequest
	case model.IsStoreUnavailable(err):
		return http.StatusServiceUnavailable
	case goerr.HasTag(err, model.ErrTagConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON body of a failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Kind    string `json:"kind"`
}

// HandleHTTP logs the error and writes a JSON failure response. A zero
// statusCode is derived from the error kind. Only 5xx errors go to Sentry.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}
	if statusCode == 0 {
		statusCode = StatusCode(err)
	}

	if statusCode >= http.StatusInternalServerError {
		logError(ctx, "HTTP error", err, "status", statusCode)
		capture(ctx, err)
	} else {
		logging.From(ctx).Warn("HTTP client error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	kind := model.ErrorKind(err)
	msg := err.Error()
	if kind == "Internal" {
		msg = http.StatusText(statusCode)
	}

	body, mErr := json.Marshal(ErrorResponse{Success: false, Error: msg, Kind: kind})
	if mErr != nil {
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, body)
}

func logError(ctx context.Context, msg string, err error, attrs ...any) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg, append(attrs,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)...)
		return
	}
	logger.Error(msg, append(attrs, "error", err.Error())...)
}

// capture sends err to Sentry. It is a no-op when Sentry is not initialized.
func capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	var ge *goerr.Error
	if errors.As(err, &ge) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
			hub.CaptureException(err)
		})
		return
	}
	hub.CaptureException(err)
}
