package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/babylonlabs-io/payment-service/internal/types"
	"github.com/babylonlabs-io/payment-service/pkg"
)

const jwtIDLength = 16

type callerKey struct{}

// Authenticator issues and verifies HS256 bearer tokens. The token subject is
// the caller identity used by every ledger operation.
type Authenticator struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewAuthenticator(secret, issuer string) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
		now:    time.Now,
	}
}

// NewToken signs a token for subject valid for ttl.
func (a *Authenticator) NewToken(subject string, ttl time.Duration) (string, error) {
	if err := pkg.ValidateAddress(subject); err != nil {
		return "", fmt.Errorf("subject: %w", err)
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}

	now := a.now()
	claims := jwt.RegisteredClaims{
		Issuer:    a.issuer,
		Subject:   subject,
		ID:        pkg.RandString(jwtIDLength),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify checks the signature, issuer and lifetime of token and returns its subject.
func (a *Authenticator) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return "", err
	}

	if err := pkg.ValidateAddress(claims.Subject); err != nil {
		return "", fmt.Errorf("subject: %w", err)
	}
	return claims.Subject, nil
}

// requireCaller rejects requests without a valid bearer token and stores the
// token subject in the request context.
func (a *Authenticator) requireCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, r, types.NewErrorWithMsg(http.StatusUnauthorized, types.Unauthenticated, "missing bearer token"))
			return
		}

		caller, err := a.Verify(strings.TrimSpace(token))
		if err != nil {
			writeError(w, r, types.NewError(http.StatusUnauthorized, types.Unauthenticated, fmt.Errorf("invalid bearer token: %w", err)))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), callerKey{}, caller)))
	})
}

// callerFromContext returns the authenticated identity. It is only set behind requireCaller.
func callerFromContext(ctx context.Context) string {
	caller, _ := ctx.Value(callerKey{}).(string)
	return caller
}
