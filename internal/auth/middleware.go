package auth

import (
	"errors"
	"net/http"
	"slices"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
)

// ErrorWriter renders an error response. It matches respond.Responder.Error.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Protect rejects requests without a valid bearer token and stores the Caller on the context.
func Protect(v *Verifier, writeErr ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := BearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeErr(w, r, apperr.Unauthorized("You are not logged in. Please login to get access.", err))
				return
			}

			caller, err := v.Verify(raw)
			if err != nil {
				msg := "Invalid token. Please login again!"
				if errors.Is(err, ErrExpiredToken) {
					msg = "Your token has expired. Please login again!"
				}

				writeErr(w, r, apperr.Unauthorized(msg, err))

				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// RestrictTo allows only callers holding one of the roles. It must run after Protect.
func RestrictTo(writeErr ErrorWriter, roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFrom(r.Context())
			if !ok {
				writeErr(w, r, apperr.Unauthorized("You are not logged in. Please login to get access.", nil))
				return
			}

			if !slices.Contains(roles, caller.Role) {
				writeErr(w, r, apperr.Forbidden("You do not have permission to perform this action"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
