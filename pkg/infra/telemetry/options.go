package telemetry

import "github.com/NeuralTrust/ContentGuard/pkg/domain/telemetry"

type ExporterLocatorOption func(*ExporterLocator)

// WithExporter registers a prototype exporter under name.
func WithExporter(name string, exporter telemetry.Exporter) ExporterLocatorOption {
	return func(el *ExporterLocator) {
		if el.exporters == nil {
			el.exporters = make(map[string]telemetry.Exporter)
		}
		el.exporters[name] = exporter
	}
}
