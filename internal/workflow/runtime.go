package workflow

import (
	"log/slog"
	"time"

	"github.com/shivanished/boon-pipeline/internal/classify"
	"github.com/shivanished/boon-pipeline/internal/entities"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Resolver   *entities.Resolver
	Classifier *classify.Classifier
	Clock      func() time.Time
	Logger     *slog.Logger
}

func (rt *Runtime) now() time.Time {
	if rt.Clock != nil {
		return rt.Clock()
	}
	return time.Now()
}
