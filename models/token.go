package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSubject is returned when a token subject is not a positive
// user id.
var ErrInvalidSubject = errors.New("token subject is not a user id")

// Token is a signed bearer token of the storage server.
//
// The JWT subject carries the numeric user id; UserID is its parsed form.
// Only SignedString ever leaves the process.
type Token struct {
	*jwt.Token `json:"-"`

	// SignedString is the compact header.payload.signature form sent in the
	// Authorization header.
	SignedString string `json:"-"`

	UserID int64 `json:"-"`
}

// UserIDFromClaims parses the "sub" claim of claims into a user id.
func UserIDFromClaims(claims jwt.Claims) (int64, error) {
	subject, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("read subject: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSubject, subject)
	}
	return userID, nil
}

// ExpiresAt returns the "exp" claim, or the zero time when the token has
// none.
func (t *Token) ExpiresAt() time.Time {
	if t.Token == nil || t.Token.Claims == nil {
		return time.Time{}
	}
	exp, err := t.Token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

func (t *Token) String() string {
	return t.SignedString
}
