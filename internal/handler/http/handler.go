package http

import (
	"time"

	"github.com/MKhiriev/go-sync15/internal/logger"
	"github.com/MKhiriev/go-sync15/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics
	now      func() time.Time

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  newMetrics(),
		now:      time.Now,
		logger:   logger,
	}
}
