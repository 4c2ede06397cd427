package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sync15/internal/config"
	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/models"
)

type appInfoService struct {
	appVersion string
	startedAt  time.Time
	now        func() time.Time

	logger *logger.Logger
}

// NewAppInfoService requires a non-empty cfg.Version. Uptime is counted from
// the call.
func NewAppInfoService(cfg config.ServerApp, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		startedAt:  time.Now(),
		now:        time.Now,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) models.VersionInfo {
	return models.VersionInfo{
		Version:       s.appVersion,
		Protocol:      models.StorageProtocolVersion,
		UptimeSeconds: int64(s.now().Sub(s.startedAt) / time.Second),
	}
}
