// Package apperr defines the operational error taxonomy surfaced to API callers.
//
// Errors built here carry a Kind that decides the HTTP status and whether the
// message is safe to show. Anything that is not an *Error is treated as
// unexpected: it is logged in full and reported as a generic internal failure.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation           Kind = "validation"
	KindNotFound             Kind = "not_found"
	KindCampaignClosed       Kind = "campaign_closed"
	KindAlreadyProcessed     Kind = "already_processed"
	KindSignatureInvalid     Kind = "signature_invalid"
	KindUnhandledEvent       Kind = "unhandled_event"
	KindProviderError        Kind = "provider_error"
	KindPaymentNotSuccessful Kind = "payment_not_successful"
	KindUnauthorized         Kind = "unauthorized"
	KindForbidden            Kind = "forbidden"
	KindInternal             Kind = "internal"
)

// HTTPStatus maps a kind to the response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindInternal:
		return http.StatusInternalServerError
	case "":
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) error { return newError(KindValidation, msg, nil) }

func NotFound(msg string) error { return newError(KindNotFound, msg, nil) }

func CampaignClosed(msg string) error { return newError(KindCampaignClosed, msg, nil) }

func AlreadyProcessed(msg string) error { return newError(KindAlreadyProcessed, msg, nil) }

func SignatureInvalid(msg string, err error) error { return newError(KindSignatureInvalid, msg, err) }

func UnhandledEvent(msg string) error { return newError(KindUnhandledEvent, msg, nil) }

// ProviderError keeps the provider's own message as the caller-facing text.
func ProviderError(msg string, err error) error { return newError(KindProviderError, msg, err) }

func PaymentNotSuccessful(msg string) error { return newError(KindPaymentNotSuccessful, msg, nil) }

func Unauthorized(msg string, err error) error { return newError(KindUnauthorized, msg, err) }

func Forbidden(msg string) error { return newError(KindForbidden, msg, nil) }

func Internal(msg string, err error) error { return newError(KindInternal, msg, err) }

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}

// KindOf returns the kind of the first *Error in err's chain, or "" when err is unexpected.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}

	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
