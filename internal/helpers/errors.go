package helpers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fastly/fastly-go/fastly"

	"github.com/integralist/fastly-mutate/internal/errorsx"
	"github.com/integralist/fastly-mutate/internal/mutator/enums"
)

const (
	// ErrorAPI indicates an API error.
	ErrorAPI = "API Error"
	// ErrorAPIClient indicates an API client error.
	ErrorAPIClient = "API Client Error"
	// ErrorSource indicates a local or remote source could not be read.
	ErrorSource = "Source Error"
	// ErrorUnknown indicates an error incompatible with any other known scenario.
	ErrorUnknown = "Unknown Error"
	// ErrorUser indicates a User error.
	ErrorUser = "User Error"
)

// maxBodySize caps how much of a response body is kept for diagnostics.
const maxBodySize = 64 << 10

// APIFailure extracts the HTTP status code and raw response body from the
// results of a fastly-go Execute() call.
func APIFailure(httpResp *http.Response, err error) (status int, body string) {
	if httpResp != nil {
		status = httpResp.StatusCode
	}

	var apiErr *fastly.GenericAPIError
	if errors.As(err, &apiErr) {
		return status, strings.TrimSpace(string(apiErr.Body()))
	}

	// The SDK only errors for status codes >= 300.
	// For other unexpected codes the body is still readable.
	if httpResp != nil && httpResp.Body != nil {
		b, readErr := io.ReadAll(io.LimitReader(httpResp.Body, maxBodySize))
		if readErr == nil {
			body = strings.TrimSpace(string(b))
		}
	}

	return status, body
}

// StageFailure builds the typed error for a failed API call within a stage.
func StageFailure(
	stage enums.Stage,
	service *Service,
	message string,
	httpResp *http.Response,
	err error,
) error {
	status, body := APIFailure(httpResp, err)

	detail := &errorsx.StageError{
		Stage:      stage,
		Message:    message,
		StatusCode: status,
		Body:       body,
		Cause:      err,
	}
	if service != nil {
		detail.Service = service.Name
		if detail.Service == "" {
			detail.Service = service.ID
		}
		detail.Version = service.Version
	}

	return errorsx.ForStage(detail)
}

// ResponseFields returns the loggable parts of an API response.
//
// NOTE: The full *http.Response must not be logged.
// Its request headers carry the API key.
func ResponseFields(httpResp *http.Response) map[string]any {
	if httpResp == nil {
		return map[string]any{"http_resp": nil}
	}
	return map[string]any{
		"status":      httpResp.Status,
		"status_code": httpResp.StatusCode,
	}
}
