package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/courseplanner/internal/app/repositories"
	"github.com/yigit/courseplanner/internal/pkg/metrics"
)

// Services holds all the service instances
type Services struct {
	PlanService *PlanService
}

// NewServices wires the services over the given repositories
func NewServices(repos *repositories.Repositories, cfg PlanServiceConfig, m *metrics.Metrics, lgr zerolog.Logger) *Services {
	return &Services{
		PlanService: NewPlanService(repos, cfg, m, lgr),
	}
}
