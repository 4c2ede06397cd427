package service

import (
	"fmt"

	"github.com/MKhiriev/go-sync15/internal/config"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/store"
	"github.com/MKhiriev/go-sync15/internal/utils"
)

// Services groups the services of the storage server.
type Services struct {
	StorageService StorageService
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		StorageService: NewStorageService(storages.BsoRepository, cfg.Limits, utils.NewUUIDGenerator(), logger),
		AuthService:    NewAuthService(cfg.App, logger),
		AppInfoService: appInfo,
	}, nil
}
