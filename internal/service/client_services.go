// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-life-keeper/internal/adapter"
	"github.com/MKhiriev/go-life-keeper/internal/config"
	"github.com/MKhiriev/go-life-keeper/internal/logger"
	"github.com/MKhiriev/go-life-keeper/internal/store"
	"github.com/MKhiriev/go-life-keeper/internal/validators"
)

type ClientServices struct {
	Mapper           *IdentifierMapper
	SyncService      ClientSyncService
	MigrationService ClientMigrationService
	PriorityService  ClientPriorityService
	SyncJob          ClientSyncJob
}

func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteStore, cfg *config.ClientConfig, logger *logger.Logger) *ClientServices {
	mapper := NewIdentifierMapper()
	migrationSvc := NewClientMigrationService(storages.Local, logger)

	syncSvc := NewClientSyncService(remote, storages.Local, mapper, validators.NewLifeDataValidator(), SyncOptions{
		ProvisionDefaults: cfg.ProvisionDefaults,
		DefaultCategories: DefaultCategories,
		HasLegacyData:     migrationSvc.HasLegacyData,
	}, logger)

	prioritySvc := NewClientPriorityService(syncSvc, logger)
	syncSvc.OnCategoryCountChanged(prioritySvc.ObserveCategoryCount)

	return &ClientServices{
		Mapper:           mapper,
		SyncService:      syncSvc,
		MigrationService: migrationSvc,
		PriorityService:  prioritySvc,
		SyncJob:          NewClientSyncJob(syncSvc, logger),
	}
}
