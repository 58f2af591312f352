// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	// no expectations: goose's first query fails
	err = Migrate(db)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrateLocal_DBError(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	if err := MigrateLocal(db); err == nil || !strings.Contains(err.Error(), "migration error") {
		t.Fatalf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	for _, fn := range []func(*sql.DB) error{Migrate, MigrateLocal} {
		err := fn(db)
		if err == nil {
			t.Fatal("expected error when db is nil, got nil")
		}
		if !strings.Contains(err.Error(), "db is nil") {
			t.Errorf("expected 'db is nil' error, got: %v", err)
		}
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		entries, err := fs.ReadDir(embedMigrations, dir)
		if err != nil {
			t.Fatalf("read %s: %v", dir, err)
		}
		if len(entries) == 0 {
			t.Errorf("expected migrations in %s", dir)
		}
		for _, e := range entries {
			body, err := fs.ReadFile(embedMigrations, dir+"/"+e.Name())
			if err != nil {
				t.Fatalf("read %s: %v", e.Name(), err)
			}
			if !strings.Contains(string(body), "-- +goose Up") {
				t.Errorf("%s has no goose Up section", e.Name())
			}
		}
	}
}
