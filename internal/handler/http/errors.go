// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header does not
	// use the Bearer scheme.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)

// Request parsing errors, answered with 400 Bad Request.
var (
	ErrInvalidQueryParam  = errors.New("invalid query parameter")
	ErrInvalidTimestamp   = errors.New("invalid timestamp header")
	ErrInvalidRequestBody = errors.New("invalid request body")
	ErrNoUserInContext    = errors.New("no user ID in request context")
)
