// Package respond writes the JSON envelopes shared by every handler.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/pagination"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"  // caller error, 4xx
	statusError   = "error" // server error, 5xx
)

const genericMessage = "Something went very wrong!"

type Responder struct {
	verbose bool
}

// New returns a Responder. Verbose responders include the error chain in
// error bodies and are meant for development only.
func New(verbose bool) *Responder {
	return &Responder{verbose: verbose}
}

type envelope struct {
	Status string               `json:"status"`
	Result *int                 `json:"result,omitempty"`
	Data   any                  `json:"data,omitempty"`
	Page   *pagination.PageInfo `json:"pagination,omitempty"`
}

type errorBody struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	Error   string   `json:"error,omitempty"`
	Stack   []string `json:"stack,omitempty"`
}

func (rs *Responder) JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (rs *Responder) Success(w http.ResponseWriter, status int, data any) {
	rs.JSON(w, status, envelope{Status: statusSuccess, Data: data})
}

// List writes a collection with its size and, when paging was requested, the page info.
func (rs *Responder) List(w http.ResponseWriter, count int, data any, page *pagination.PageInfo) {
	rs.JSON(w, http.StatusOK, envelope{Status: statusSuccess, Result: &count, Data: data, Page: page})
}

// Error renders err. Operational errors keep their message; anything else is
// logged in full and reported generically unless the responder is verbose.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperr.As(err)

	status := http.StatusInternalServerError
	message := genericMessage

	if ok {
		status = appErr.Kind.HTTPStatus()
	}

	if ok && (status < http.StatusInternalServerError || rs.verbose) {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}

	body := errorBody{Status: statusFail, Message: message}
	if status >= http.StatusInternalServerError {
		body.Status = statusError
	}

	if rs.verbose {
		body.Error = err.Error()
		body.Stack = chain(err)
	}

	rs.JSON(w, status, body)
}

// NotFound answers requests for routes that do not exist.
func (rs *Responder) NotFound(w http.ResponseWriter, r *http.Request) {
	rs.JSON(w, http.StatusNotFound, errorBody{
		Status:  statusFail,
		Message: fmt.Sprintf("%s not found.", r.URL.Path),
	})
}

// Decode reads a JSON body into v and validates its tags.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxErr):
			return &apperr.Error{Kind: apperr.KindValidation, Message: "Request body is not valid JSON", Err: err}
		case errors.As(err, &typeErr):
			return &apperr.Error{Kind: apperr.KindValidation, Message: fmt.Sprintf("%q has the wrong type", typeErr.Field), Err: err}
		default:
			return &apperr.Error{Kind: apperr.KindValidation, Message: "Invalid request body", Err: err}
		}
	}

	return apperr.Validate(v)
}

func chain(err error) []string {
	var out []string

	for err != nil {
		out = append(out, err.Error())
		err = errors.Unwrap(err)
	}

	return out
}

// Page reads the page and limit query parameters.
func Page(r *http.Request) (pagination.Params, error) {
	var p pagination.Params

	for key, dst := range map[string]*int{"page": &p.Page, "limit": &p.Limit} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}

		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, apperr.Validation(fmt.Sprintf("%q must be a positive number", key))
		}

		*dst = n
	}

	return p, nil
}
