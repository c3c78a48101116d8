// Package numbers provides the phone number HTTP module.
package numbers

import (
	"fmt"

	apphttp "phonekit/internal/http"
	"phonekit/internal/lookup"
	"phonekit/internal/numbers/handler"
	"phonekit/internal/numbers/service"
	"phonekit/internal/phonenumber"
	"phonekit/platform/config"
	"phonekit/platform/logger"
	"phonekit/platform/metrics"
	"phonekit/platform/validator"
)

// Module wires the parse, format, describe and example routes.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the numbers module. cache and m may be nil.
func NewModule(engine *phonenumber.Engine, lookupSvc *lookup.Service, cache service.Cache, m *metrics.Metrics, val *validator.Validator, cfg config.NumbersConfig, log *logger.Logger) (*Module, error) {
	if err := handler.RegisterValidations(val); err != nil {
		return nil, fmt.Errorf("register number validations: %w", err)
	}
	svc := service.New(engine, lookupSvc, cache, m, log, cfg)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}, nil
}

// Service exposes the numbers service for health reporting.
func (m *Module) Service() *service.Service {
	return m.service
}

func (m *Module) Name() string {
	return "numbers"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	numbers := ctx.Protected.Group("/numbers")
	numbers.GET("/inspect", m.handler.Inspect)
	numbers.POST("/batch", m.handler.Batch)
	numbers.GET("/format", m.handler.Format)
	numbers.GET("/describe", m.handler.Describe)

	ctx.Protected.GET("/regions", m.handler.ListRegions)
	ctx.Protected.GET("/regions/:region/example", m.handler.Example)
	ctx.Protected.GET("/networks/:callingCode/example", m.handler.NetworkExample)
}

var _ apphttp.Module = (*Module)(nil)
