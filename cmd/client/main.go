package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-life-keeper/internal/adapter"
	"github.com/MKhiriev/go-life-keeper/internal/client"
	"github.com/MKhiriev/go-life-keeper/internal/config"
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/service"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Printf("Life Keeper client %s\n", buildInfo)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewClientLogger("life-keeper-client", logger.FileConfig{
		Path:      cfg.Log.File,
		MaxSizeMB: cfg.Log.MaxSizeMB,
	})
	defer log.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter.HTTPAddress, cfg.Adapter.RequestTimeout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating remote store client")
	}

	storages, err := store.NewClientStorages(ctx, cfg.Storage.LocalDSN, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating local storage")
	}
	defer storages.Close()

	services := service.NewClientServices(storages, remote, cfg, log)

	app, err := client.NewApp(services, storages.Local, cfg, os.Stdout, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Err(err).Msg("client run error")
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
