package api

import (
	"context"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const storeCheckTimeout = 2 * time.Second

type HealthChecker interface {
	HealthCheck() echo.HandlerFunc
}

type healthChecker struct {
	health *health.Health
}

func NewHealthChecker(version string, checks ...health.Config) (HealthChecker, error) {
	h, err := health.New(health.WithComponent(health.Component{Name: "crewmate-creator", Version: version}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create health checker")
	}

	for _, check := range checks {
		if err := h.Register(check); err != nil {
			return nil, errors.Wrapf(err, "failed to register health check %q", check.Name)
		}
	}

	return &healthChecker{
		health: h,
	}, nil
}

func MustNewHealthChecker(version string, checks ...health.Config) HealthChecker {
	h, err := NewHealthChecker(version, checks...)
	if err != nil {
		panic(err)
	}
	return h
}

// StoreCheck reports the record store unavailable when ping fails.
func StoreCheck(ping func(ctx context.Context) error) health.Config {
	return health.Config{
		Name:    "store",
		Timeout: storeCheckTimeout,
		Check:   ping,
	}
}

func (h *healthChecker) HealthCheck() echo.HandlerFunc {
	return echo.WrapHandler(h.health.Handler())
}
