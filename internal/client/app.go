// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-life-keeper/internal/config"
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/service"
	"github.com/MKhiriev/go-life-keeper/internal/utils"
	"github.com/MKhiriev/go-life-keeper/internal/workers"
	"github.com/MKhiriev/go-life-keeper/models"
)

const (
	commandRun            = "run"
	commandMigrate        = "migrate"
	commandRestoreBackup  = "restore-backup"
	commandResetMigration = "reset-migration"
	commandWipeLocal      = "wipe-local"
)

const progressBarWidth = 30

type App struct {
	services *service.ClientServices
	local    LocalCache
	workers  *workers.Workers
	cfg      *config.ClientConfig
	out      io.Writer
	logger   *logger.Logger
}

// NewApp wires the client services and background workers. Progress and
// summaries are written to out; logs go to logger.
func NewApp(services *service.ClientServices, local LocalCache, cfg *config.ClientConfig, out io.Writer, logger *logger.Logger) (*App, error) {
	if services == nil || services.SyncService == nil || services.MigrationService == nil {
		return nil, fmt.Errorf("client services are not initialized")
	}

	w := workers.NewWorkers(
		workers.NewSyncWorker(services.SyncJob, cfg.Workers.SyncInterval),
		workers.NewRealtimeWorker(services.SyncService, 0, logger),
	)

	return &App{services: services, local: local, workers: w, cfg: cfg, out: out, logger: logger}, nil
}

func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	switch a.cfg.Command {
	case "", commandRun:
		return a.run(ctx)
	case commandMigrate:
		return a.migrateOnly(ctx)
	case commandRestoreBackup:
		return a.restoreBackup(ctx)
	case commandResetMigration:
		a.services.MigrationService.ClearMigrationFlags(ctx)
		a.println(successStyle.Render("Migration flag and backup cleared."))
		return nil
	case commandWipeLocal:
		return a.wipeLocal(ctx)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, a.cfg.Command)
	}
}

func (a *App) run(ctx context.Context) error {
	if err := a.start(ctx); err != nil {
		return err
	}
	defer a.services.SyncService.Stop()

	if err := a.migrateIfNeeded(ctx); err != nil {
		return err
	}

	a.printSummary()
	a.println(helpStyle.Render("Syncing in the background. Press Ctrl+C to stop."))

	a.workers.Run(ctx)
	a.logger.Info().Str("func", "App.run").Msg("client stopped")
	return nil
}

func (a *App) migrateOnly(ctx context.Context) error {
	if err := a.start(ctx); err != nil {
		return err
	}
	defer a.services.SyncService.Stop()

	return a.migrateIfNeeded(ctx)
}

func (a *App) start(ctx context.Context) error {
	userID, err := a.sessionUserID()
	if err != nil {
		return err
	}

	if err = a.services.SyncService.Start(ctx, userID, a.cfg.Session.AccessToken); err != nil {
		return fmt.Errorf("start sync: %w", err)
	}
	return nil
}

// sessionUserID returns the configured user id, or the subject of the access
// token when only a token is configured.
func (a *App) sessionUserID() (string, error) {
	session := a.cfg.Session
	if session.UserID != "" {
		return session.UserID, nil
	}
	if session.AccessToken == "" {
		return "", ErrNoSession
	}

	userID, err := utils.ParseUserIDFromJWT(session.AccessToken)
	if err != nil {
		a.logger.Err(err).Str("func", "App.sessionUserID").Msg("error reading user id from access token")
		return "", fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	return userID, nil
}

// migrateIfNeeded moves legacy local data into the remote store once.
func (a *App) migrateIfNeeded(ctx context.Context) error {
	migration := a.services.MigrationService
	if migration.IsAlreadyMigrated(ctx) {
		return nil
	}

	data := migration.DetectLegacyData(ctx)
	if !data.HasData {
		return nil
	}

	a.println(titleStyle.Render(fmt.Sprintf("Migrating %d categories and %d items", len(data.Categories), len(data.Items))))
	result := migration.Migrate(ctx, data, a.services.SyncService, a.printProgress)

	if !result.Success {
		a.logger.Error().Str("func", "App.migrateIfNeeded").Strs("errors", result.Errors).Msg("migration failed")
		a.println(errorStyle.Render("Migration failed. Your local data was kept."))
		for _, e := range result.Errors {
			a.println(helpStyle.Render("  " + e))
		}
		return fmt.Errorf("%w: %s", ErrMigrationFailed, strings.Join(result.Errors, "; "))
	}

	a.println(successStyle.Render(fmt.Sprintf("Migrated %d categories and %d items.",
		result.CategoriesMigrated, result.ItemsMigrated)))

	if err := a.services.SyncService.RefreshData(ctx); err != nil {
		a.logger.Warn().Err(err).Str("func", "App.migrateIfNeeded").Msg("refresh after migration failed")
	}
	return nil
}

func (a *App) restoreBackup(ctx context.Context) error {
	if err := a.services.MigrationService.RestoreFromBackup(ctx); err != nil {
		a.println(errorStyle.Render("Restore failed: " + err.Error()))
		return fmt.Errorf("restore backup: %w", err)
	}
	a.println(successStyle.Render("Legacy data restored from backup. It will be migrated on next start."))
	return nil
}

func (a *App) wipeLocal(ctx context.Context) error {
	userID, err := a.sessionUserID()
	if err != nil {
		return err
	}
	a.local.ClearAll(ctx, userID)
	a.println(successStyle.Render("Local cache removed for " + userID + "."))
	return nil
}

func (a *App) printProgress(p models.MigrationProgress) {
	a.println(renderProgress(p))
}

func (a *App) printSummary() {
	syncSvc := a.services.SyncService
	lines := []string{
		titleStyle.Render("Life Keeper"),
		fmt.Sprintf("User:       %s", syncSvc.UserID()),
		fmt.Sprintf("Categories: %d", len(syncSvc.Categories())),
		fmt.Sprintf("Items:      %d", len(syncSvc.Items())),
	}
	if !syncSvc.Subscribed() {
		lines = append(lines, helpStyle.Render("Realtime updates unavailable, retrying in the background."))
	}
	a.println(summaryStyle.Render(strings.Join(lines, "\n")))
}

func (a *App) println(s string) {
	_, _ = fmt.Fprintln(a.out, s)
}

// renderProgress draws one migration progress line.
func renderProgress(p models.MigrationProgress) string {
	percent := min(max(p.Progress, 0), 100)
	filled := percent * progressBarWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)

	style := barStyle
	if p.Phase == models.PhaseError {
		style = errorStyle
	}
	return fmt.Sprintf("%s %3d%% %-10s %s", style.Render(bar), percent, p.Phase, p.Message)
}
