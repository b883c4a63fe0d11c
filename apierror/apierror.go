// Package apierror holds the error payloads returned by the API.
//
// Client errors render as {"message": "..."}; internal errors render as
// {"success": false, "message": "Internal server error", "error": "..."}.
package apierror

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse renderer type for handling all sorts of errors.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	Success *bool  `json:"success,omitempty"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func (e *ErrResponse) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ErrResponse) Unwrap() error {
	return e.Err
}

var (
	ErrUnauthorized = &ErrResponse{HTTPStatusCode: http.StatusUnauthorized, Message: "unauthorized access"}
	ErrForbidden    = &ErrResponse{HTTPStatusCode: http.StatusForbidden, Message: "forbidden access"}
)

func NotFound(message string) *ErrResponse {
	return &ErrResponse{HTTPStatusCode: http.StatusNotFound, Message: message}
}

func InvalidRequest(err error) *ErrResponse {
	return &ErrResponse{Err: err, HTTPStatusCode: http.StatusBadRequest, Message: err.Error()}
}

func ServiceUnavailable(message string) *ErrResponse {
	return &ErrResponse{HTTPStatusCode: http.StatusServiceUnavailable, Message: message}
}

func Internal(err error) *ErrResponse {
	success := false
	if err == nil {
		err = errors.New("unknown error")
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Success:        &success,
		Message:        "Internal server error",
		Detail:         err.Error(),
	}
}

// Write renders e. Render errors are ignored: the status line has already
// been written by then.
func Write(w http.ResponseWriter, r *http.Request, e *ErrResponse) {
	_ = render.Render(w, r, e)
}
