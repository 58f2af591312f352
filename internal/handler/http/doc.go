// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST and realtime transport of the backend.
//
// Every route except /api/version requires a bearer token; the token
// subject is the user id that scopes all queries. Failures are answered
// with a status code and one of the app.Msg* bodies so the client can map
// them back to domain errors.
package http
