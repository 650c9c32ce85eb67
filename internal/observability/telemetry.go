package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/gamewatchr/internal/config"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
)

type stopper struct {
	name string
	stop func(context.Context) error
}

// Telemetry owns the tracing, profiling and pprof exporters of a process.
type Telemetry struct {
	logger  *logging.Logger
	stopped bool
	stops   []stopper
}

// Start brings up every exporter cfg enables. On error, exporters that
// already started are stopped before returning.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	steps := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{"uptrace", startTracing},
		{"pyroscope", startProfiling},
		{"pprof", startPprof},
	}
	for _, step := range steps {
		stop, err := step.start(cfg, logger)
		if err != nil {
			_ = t.Shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
		if stop != nil {
			t.stops = append(t.stops, stopper{name: step.name, stop: stop})
		}
	}
	return t, nil
}

// Shutdown stops exporters in reverse start order. Calling it twice is a no-op.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.stopped {
		return nil
	}
	t.stopped = true

	var errs []error
	for i := len(t.stops) - 1; i >= 0; i-- {
		s := t.stops[i]
		if err := s.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.name, err))
			continue
		}
		t.logger.Info("telemetry exporter stopped", "exporter", s.name)
	}
	return errors.Join(errs...)
}

// Active lists the running exporters in start order.
func (t *Telemetry) Active() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.stops))
	for _, s := range t.stops {
		names = append(names, s.name)
	}
	return names
}
