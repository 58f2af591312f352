package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-life-keeper/internal/config"
	"github.com/MKhiriev/go-life-keeper/internal/handler"
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/realtime"
	"github.com/MKhiriev/go-life-keeper/internal/server"
	"github.com/MKhiriev/go-life-keeper/internal/service"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/models"
)

const commandIssueToken = "issue-token"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("life-keeper-server")
	cfg, err := config.GetServerConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := log.WithContext(context.Background())

	if cfg.Command == commandIssueToken {
		issueToken(ctx, cfg, log)
		return
	}

	storages, err := store.NewStorages(ctx, cfg.DSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	hub := realtime.NewHub(log)
	handlers, err := handler.NewHandlers(services, hub, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, store.NewChangeListener(cfg.DSN, log), hub, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

// issueToken prints a bearer token for cfg.UserID. There is no sign-in
// flow on the backend; operators hand these tokens to clients.
func issueToken(ctx context.Context, cfg *config.ServerConfig, log *logger.Logger) {
	if cfg.UserID == "" {
		log.Fatal().Msg("issue-token needs -user-id")
	}

	auth := service.NewAuthService(cfg.TokenSignKey, cfg.TokenIssuer, cfg.TokenDuration, log)
	token, err := auth.CreateToken(ctx, cfg.UserID)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token")
	}
	fmt.Println(token.SignedString)
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
