package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/NeuralTrust/ContentGuard/pkg/domain/telemetry"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/metrics/metric_events"
	"github.com/stretchr/testify/assert"
)

type mockExporter struct {
	name                 string
	validateErr          error
	withSettingsErr      error
	withSettingsExporter telemetry.Exporter
}

func newMockExporter(name string) *mockExporter {
	return &mockExporter{name: name}
}

func (m *mockExporter) Name() string {
	return m.name
}

func (m *mockExporter) ValidateConfig(map[string]interface{}) error {
	return m.validateErr
}

func (m *mockExporter) Handle(context.Context, *metric_events.Event) error {
	return nil
}

func (m *mockExporter) WithSettings(map[string]interface{}) (telemetry.Exporter, error) {
	if m.withSettingsErr != nil {
		return nil, m.withSettingsErr
	}
	if m.withSettingsExporter != nil {
		return m.withSettingsExporter, nil
	}
	return m, nil
}

func (m *mockExporter) Close() {}

func TestNewExporterLocator_NoOptions(t *testing.T) {
	locator := NewExporterLocator()

	assert.NotNil(t, locator.exporters)
	assert.Empty(t, locator.exporters)
}

func TestNewExporterLocator_WithExporter_OverwritesSameName(t *testing.T) {
	exporter1 := newMockExporter("exporter")
	exporter2 := newMockExporter("exporter")

	locator := NewExporterLocator(
		WithExporter("exporter", exporter1),
		WithExporter("exporter", exporter2),
	)

	assert.Len(t, locator.exporters, 1)
	assert.Same(t, exporter2, locator.exporters["exporter"])
}

func TestGetExporter_Success(t *testing.T) {
	configured := newMockExporter("kafka")
	base := newMockExporter("kafka")
	base.withSettingsExporter = configured

	locator := NewExporterLocator(WithExporter("kafka", base))

	result, err := locator.GetExporter(telemetry.ExporterConfig{
		Name:     "kafka",
		Settings: map[string]interface{}{"brokers": "localhost:9092"},
	})

	assert.NoError(t, err)
	assert.Same(t, configured, result)
}

func TestGetExporter_UnknownExporter(t *testing.T) {
	locator := NewExporterLocator()

	result, err := locator.GetExporter(telemetry.ExporterConfig{Name: "unknown"})

	assert.Nil(t, result)
	assert.EqualError(t, err, "unknown exporter: unknown")
}

func TestGetExporter_ValidationError(t *testing.T) {
	exporter := newMockExporter("kafka")
	exporter.validateErr = errors.New("kafka topic is required")
	locator := NewExporterLocator(WithExporter("kafka", exporter))

	result, err := locator.GetExporter(telemetry.ExporterConfig{Name: "kafka"})

	assert.Nil(t, result)
	assert.EqualError(t, err, "kafka topic is required")
}

func TestGetExporter_WithSettingsError(t *testing.T) {
	exporter := newMockExporter("kafka")
	exporter.withSettingsErr = errors.New("failed to create kafka producer")
	locator := NewExporterLocator(WithExporter("kafka", exporter))

	result, err := locator.GetExporter(telemetry.ExporterConfig{Name: "kafka"})

	assert.Nil(t, result)
	assert.EqualError(t, err, "failed to create kafka producer")
}

func TestValidateExporter(t *testing.T) {
	exporter := newMockExporter("kafka")
	locator := NewExporterLocator(WithExporter("kafka", exporter))

	assert.NoError(t, locator.ValidateExporter(telemetry.ExporterConfig{Name: "kafka"}))
	assert.Error(t, locator.ValidateExporter(telemetry.ExporterConfig{Name: "unknown"}))

	exporter.validateErr = errors.New("kafka brokers are required")
	assert.EqualError(t, locator.ValidateExporter(telemetry.ExporterConfig{Name: "kafka"}), "kafka brokers are required")
}
