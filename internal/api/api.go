// Package api assembles the HTTP API module: order transformation,
// batch processing, and blob storage routes with shared middleware.
package api

import (
	"net/http"

	"github.com/shivanished/boon-pipeline/internal/config"
	"github.com/shivanished/boon-pipeline/internal/infrastructure"
	"github.com/shivanished/boon-pipeline/pkg/middleware"
	"github.com/shivanished/boon-pipeline/pkg/module"
)

// NewModule creates the API module with all handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	mux := http.NewServeMux()
	registerRoutes(mux, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
