// Package auth turns bearer tokens into a typed Caller carried on the request context.
//
// Token issuance lives with the account service; this package only verifies
// HS256 tokens signed with the shared secret and enforces role restrictions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Claims is the token payload. The subject holds the user id.
type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a raw token string.
func (v *Verifier) Verify(raw string) (Caller, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Caller{}, ErrExpiredToken
		}

		return Caller{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Caller{}, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	switch claims.Role {
	case RoleUser, RoleAdmin:
	default:
		return Caller{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return Caller{ID: id, Email: claims.Email, Role: claims.Role}, nil
}

// Sign issues a token for the caller. Used by tooling and tests.
func (v *Verifier) Sign(c Caller, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = c.ID.String()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:            c.Email,
		Role:             c.Role,
		RegisteredClaims: claims,
	})

	return token.SignedString(v.secret)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingToken
	}

	return strings.TrimSpace(token), nil
}

type contextKey struct{}

func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(contextKey{}).(Caller)
	return c, ok
}
