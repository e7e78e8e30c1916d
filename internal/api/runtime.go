package api

import (
	"github.com/shivanished/boon-pipeline/internal/classify"
	"github.com/shivanished/boon-pipeline/internal/config"
	"github.com/shivanished/boon-pipeline/internal/entities"
	"github.com/shivanished/boon-pipeline/internal/infrastructure"
	"github.com/shivanished/boon-pipeline/internal/oracle"
	"github.com/shivanished/boon-pipeline/internal/tmsapi"
	"github.com/shivanished/boon-pipeline/internal/workflow"
)

// Runtime extends Infrastructure with the transformation pipeline runtime.
// One workflow runtime serves every request: the entity resolver cache is
// lock-protected and accumulates across the server's lifetime.
type Runtime struct {
	*infrastructure.Infrastructure
	Workflow *workflow.Runtime
	TMS      *tmsapi.Client
	Batch    config.BatchConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")
	gateway := oracle.New(cfg.Agent, logger)

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Agent:     cfg.Agent,
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Storage:   infra.Storage,
		},
		Workflow: &workflow.Runtime{
			Resolver:   entities.NewResolver(gateway, logger),
			Classifier: classify.NewClassifier(gateway, logger),
			Logger:     logger,
		},
		TMS:   tmsapi.New(&cfg.TMS, logger),
		Batch: cfg.Batch,
	}
}
