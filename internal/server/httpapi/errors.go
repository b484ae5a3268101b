package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bookmarks/internal/common"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// requestError is a client mistake detected before any service call.
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }
func (e *requestError) Unwrap() error { return common.ErrorValidation }

func badRequest(msg string) error { return &requestError{msg: msg} }

const internalErrorMessage = "Internal server error"

// statusFor maps an error returned by decoding or a service to the status
// and message the client sees.
func statusFor(err error) (int, string) {
	var re *requestError
	switch {
	case errors.As(err, &re):
		return http.StatusBadRequest, re.msg
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, "Bad request"
	case errors.Is(err, common.ErrCredentialsTaken):
		return http.StatusForbidden, "Credentials taken"
	case common.IsCredentialsRejected(err):
		return http.StatusForbidden, "Credentials incorrect"
	case errors.Is(err, common.ErrorAccessDenied):
		return http.StatusForbidden, "Access to resources denied"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrMissingToken),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "Unauthorized"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", common.BearerScheme)
	}
	writeJSON(w, status, errorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	})
}
