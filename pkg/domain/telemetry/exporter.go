package telemetry

import (
	"context"

	"github.com/NeuralTrust/ContentGuard/pkg/infra/metrics/metric_events"
)

// Exporter ships events to an external sink. WithSettings returns a new,
// connected exporter; the receiver is only a prototype.
type Exporter interface {
	Name() string
	ValidateConfig(settings map[string]interface{}) error
	Handle(ctx context.Context, evt *metric_events.Event) error
	WithSettings(settings map[string]interface{}) (Exporter, error)
	Close()
}
