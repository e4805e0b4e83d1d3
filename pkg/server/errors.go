package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	concherrors "github.com/NVIDIA/conch/pkg/errors"
	"github.com/NVIDIA/conch/pkg/serializer"
)

// ErrorResponse is the body written for every error returned by the server.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// WriteError writes an error response. The request ID is taken from the
// request context, or generated when the request did not pass through the
// request ID middleware.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code concherrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestIDFrom(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.Respond(w, r, statusCode, errResp)
}

// WriteErrorFromErr writes err as an error response. Structured errors keep
// their code, message and context; anything else is reported as an internal
// error with fallbackMsg.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMsg string, details map[string]any) {
	var se *concherrors.StructuredError
	if errors.As(err, &se) {
		merged := mergeDetails(se.Context, details)
		if se.Cause != nil {
			merged = mergeDetails(merged, map[string]any{"error": se.Cause.Error()})
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, retryableFromCode(se.Code), merged)
		return
	}

	merged := details
	if err != nil {
		merged = mergeDetails(details, map[string]any{"error": err.Error()})
	}
	code := concherrors.ErrCodeInternal
	WriteError(w, r, HTTPStatusFromCode(code), code, fallbackMsg, retryableFromCode(code), merged)
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code concherrors.ErrorCode) int {
	switch code {
	case concherrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case concherrors.ErrCodeNotFound:
		return http.StatusNotFound
	case concherrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case concherrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case concherrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code concherrors.ErrorCode) bool {
	switch code {
	case concherrors.ErrCodeTimeout,
		concherrors.ErrCodeUnavailable,
		concherrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns the union of a and b, with b winning on conflicts.
// It returns nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
