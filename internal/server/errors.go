// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoHTTPHandler   = errors.New("no HTTP handler to serve")
	errNoListenAddress = errors.New("listen address is empty")
)
