// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoHTTPHandler is returned by NewServer when the handler set carries no
// HTTP router to serve the sync API.
var errNoHTTPHandler = errors.New("no HTTP handler configured for the sync API")
