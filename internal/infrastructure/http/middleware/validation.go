package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	nethttpmiddleware "github.com/oapi-codegen/nethttp-middleware"

	"github.com/rezkam/todos/internal/infrastructure/http/response"
)

// ValidationConfig holds configuration for the OpenAPI validation middleware.
type ValidationConfig struct {
	// MultiError when true collects all validation errors instead of stopping at first.
	MultiError bool
}

// NewValidator creates OpenAPI request validation middleware.
// Requests whose path, parameters or JSON body do not match spec are
// answered with 400 and never reach the handler.
func NewValidator(spec *openapi3.T, config ValidationConfig) func(http.Handler) http.Handler {
	// No servers: match on path alone, whatever host the service is bound to.
	spec.Servers = nil

	opts := &nethttpmiddleware.Options{
		Options: openapi3filter.Options{
			MultiError:         config.MultiError,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
		ErrorHandlerWithOpts:  validationErrorHandler,
		SilenceServersWarning: true,
	}

	return nethttpmiddleware.OapiRequestValidatorWithOptions(spec, opts)
}

// validationErrorHandler formats validation errors using the standard error envelope.
func validationErrorHandler(ctx context.Context, err error, w http.ResponseWriter, r *http.Request, opts nethttpmiddleware.ErrorHandlerOpts) {
	details := parseValidationError(err)

	slog.WarnContext(ctx, "request validation failed",
		"path", r.URL.Path,
		"method", r.Method,
		"invalid_field_count", len(details),
		"error", err.Error())

	status := opts.StatusCode
	if status == 0 {
		status = http.StatusBadRequest
	}

	body, encErr := json.Marshal(response.ErrorResponse{
		Error: response.ErrorDetail{
			Code:    "VALIDATION_ERROR",
			Message: "validation failed",
			Details: details,
		},
	})
	if encErr != nil {
		response.InternalError(w, r, encErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// parseValidationError extracts field-specific validation details from OpenAPI errors.
// Messages look like:
//   - request body has an error: doesn't match schema: Error at "/title": value must be a string
//   - parameter "id" in path has an error: value abc: an invalid integer: invalid syntax
//   - request body has an error: value is required but missing
func parseValidationError(err error) []response.ErrorField {
	if err == nil {
		return []response.ErrorField{}
	}
	msg := err.Error()

	if field, rest, ok := quotedAfter(msg, `Error at "/`); ok {
		issue := "validation failed"
		if _, after, found := strings.Cut(rest, ":"); found && strings.TrimSpace(after) != "" {
			issue = firstLine(strings.TrimSpace(after))
		}
		return []response.ErrorField{{Field: field, Issue: issue}}
	}

	if field, rest, ok := quotedAfter(msg, `parameter "`); ok {
		issue := "invalid parameter"
		if _, after, found := strings.Cut(rest, "has an error:"); found {
			issue = firstLine(strings.TrimSpace(after))
		}
		return []response.ErrorField{{Field: field, Issue: issue}}
	}

	if strings.Contains(msg, "request body") {
		switch {
		case strings.Contains(msg, "required"):
			return []response.ErrorField{{Field: "body", Issue: "required field missing"}}
		case strings.Contains(msg, "doesn't match"):
			return []response.ErrorField{{Field: "body", Issue: "request body doesn't match schema"}}
		default:
			return []response.ErrorField{{Field: "body", Issue: "invalid request body"}}
		}
	}

	return []response.ErrorField{}
}

// quotedAfter finds marker in msg and returns the text up to the next quote
// and everything after that quote.
func quotedAfter(msg, marker string) (quoted, rest string, ok bool) {
	_, after, found := strings.Cut(msg, marker)
	if !found {
		return "", "", false
	}
	quoted, rest, found = strings.Cut(after, `"`)
	if !found {
		return "", "", false
	}
	return quoted, rest, true
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
