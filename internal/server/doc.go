// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the backend: the HTTP server and the database change
// listener that feeds the realtime hub. Both stop on SIGTERM, SIGINT or
// SIGQUIT and the HTTP server drains in-flight requests before exiting.
package server
