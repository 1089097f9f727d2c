// Package auth resolves bearer tokens into callers.
package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
)

type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type Resolver struct {
	secret []byte
	ttl    time.Duration
}

func NewResolver(secret string, ttl time.Duration) *Resolver {
	return &Resolver{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Resolve verifies an HS256 token and returns the caller it names.
// Every failure is reported as Unauthenticated.
func (r *Resolver) Resolve(token string) (models.Caller, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Caller{}, errs.Unauthenticated("missing bearer token")
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Caller{}, &errs.Error{Kind: errs.KindUnauthenticated, Message: "invalid or expired token", Err: err}
	}

	if claims.ExpiresAt == nil {
		return models.Caller{}, errs.Unauthenticated("token has no expiry")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return models.Caller{}, errs.Unauthenticated("invalid token subject")
	}
	if !models.IsValidRole(claims.Role.String()) {
		return models.Caller{}, errs.Unauthenticated("invalid token role")
	}

	return models.Caller{UserID: userID, Role: claims.Role}, nil
}

// IssueToken signs a token for caller valid from now for the resolver's ttl.
func (r *Resolver) IssueToken(caller models.Caller, now time.Time) (string, error) {
	claims := Claims{
		Role: caller.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(caller.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(r.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
