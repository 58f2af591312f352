// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the client process lifecycle.
//
// It starts the synchronization engine for the configured session, runs
// the one-time legacy migration when needed and keeps the background
// workers alive until the process is asked to stop. Maintenance commands
// (restore-backup, reset-migration, wipe-local) run once and exit.
package client
