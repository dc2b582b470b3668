package builder

import (
	"encoding/json"
	"errors"
	"net/http"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func badRequest(err error) error {
	return StatusError{Code: http.StatusBadRequest, Err: err}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps err onto a status code. Errors without one are 500s and
// their message is not leaked.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		message = httpErr.Error()
	}
	respondJSON(w, code, errorResponse{Error: message})
}

func writeGuardError(w http.ResponseWriter, err error) {
	if err == nil {
		respondJSON(w, http.StatusForbidden, errorResponse{Error: http.StatusText(http.StatusForbidden)})
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	respondJSON(w, code, errorResponse{Error: http.StatusText(code)})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
