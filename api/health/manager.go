package health

import (
	"github.com/go-chi/chi/v5"

	"github.com/muhammadMilon/FruitPanda-sub001/services"
)

type HealthRoutesManager struct {
	healthService *services.HealthService
}

func NewHealthRoutesManager(healthService *services.HealthService) *HealthRoutesManager {
	return &HealthRoutesManager{
		healthService: healthService,
	}
}

func (hrm *HealthRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/health", hrm.GetHealth)
	r.Get("/health/live", hrm.GetLiveness)
}
