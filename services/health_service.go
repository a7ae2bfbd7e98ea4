package services

import (
	"github.com/MonkyMars/gecho"

	"github.com/muhammadMilon/FruitPanda-sub001/database"
)

type HealthService struct {
	logger *gecho.Logger
	db     *database.DB
	cache  *CacheService
}

func NewHealthService(logger *gecho.Logger, db *database.DB, cache *CacheService) *HealthService {
	return &HealthService{
		logger: logger,
		db:     db,
		cache:  cache,
	}
}

type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}

// Check probes the database and cache. The cache is advisory: a down Redis
// degrades the report but the service stays healthy.
func (hs *HealthService) Check() *HealthStatus {
	status := &HealthStatus{Status: "ok", Database: "ok", Cache: "ok"}

	if err := hs.db.Health(); err != nil {
		hs.logger.Error("Database health check failed", gecho.Field("error", err))
		status.Status = "degraded"
		status.Database = "unreachable"
	}

	if err := hs.cache.Ping(); err != nil {
		hs.logger.Warn("Cache health check failed", gecho.Field("error", err))
		if status.Status == "ok" {
			status.Status = "degraded"
		}
		status.Cache = "unreachable"
	}

	return status
}

func (hs *HealthService) Healthy() bool {
	return hs.db.Health() == nil
}
