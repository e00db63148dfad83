package metrics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NeuralTrust/ContentGuard/pkg/domain/telemetry"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/metrics/metric_events"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const exportTimeout = 10 * time.Second

//go:generate mockery --name=Worker --dir=. --output=./mocks --filename=worker_mock.go --case=underscore --with-expecter
type Worker interface {
	Shutdown()
	StartWorkers(n int)
	Process(evt *metric_events.Event)
}

type worker struct {
	logger    *logrus.Logger
	exporters []telemetry.Exporter
	opts      workerOptions
	taskChan  chan func()
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closed    atomic.Bool
}

// NewWorker takes ownership of exporters and closes them on Shutdown.
func NewWorker(logger *logrus.Logger, exporters []telemetry.Exporter, opts ...Option) Worker {
	o := workerOptions{queueSize: defaultQueueSize, prometheus: true}
	for _, opt := range opts {
		opt(&o)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &worker{
		logger:    logger,
		exporters: exporters,
		opts:      o,
		taskChan:  make(chan func(), o.queueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (m *worker) Shutdown() {
	if m.closed.Swap(true) {
		return
	}
	m.logger.Info("shutting down metrics workers")
	m.cancel()
	m.wg.Wait()
	for _, exporter := range m.exporters {
		exporter.Close()
	}
	m.logger.Info("metrics workers stopped")
}

func (m *worker) Process(evt *metric_events.Event) {
	if evt == nil {
		return
	}
	if m.opts.prometheus && evt.IsTypeDecision() {
		m.enqueueTask(func() {
			m.registryMetricsToPrometheus(evt)
		}, evt.RequestID)
	}
	if len(m.exporters) > 0 {
		m.enqueueTask(func() {
			m.registryMetricsToExporters(evt)
		}, evt.RequestID)
	}
}

func (m *worker) registryMetricsToExporters(evt *metric_events.Event) {
	ctx, cancel := context.WithTimeout(m.ctx, exportTimeout)
	defer cancel()
	var failedExporters []string
	for _, exporter := range m.exporters {
		if err := exporter.Handle(ctx, evt); err != nil {
			m.logger.WithFields(logrus.Fields{
				"request_id": evt.RequestID,
				"exporter":   exporter.Name(),
				"event_id":   evt.ID,
			}).WithError(err).Error("exporter failed")
			failedExporters = append(failedExporters, exporter.Name())
		}
	}
	if len(failedExporters) > 0 {
		m.logger.WithField("failedExporters", failedExporters).
			Warnf("%d exporters failed to handle event", len(failedExporters))
	}
}

func (m *worker) registryMetricsToPrometheus(evt *metric_events.Event) {
	decision := evt.Decision
	if decision == nil {
		return
	}
	prometheus.ModerationDecisions.WithLabelValues(decision.Status, prometheus.ViolationCategoryLabel(decision.ViolationCategory)).Inc()
	prometheus.JudgmentLatency.WithLabelValues(evt.Provider).Observe(float64(evt.Latency) / 1000)
	if decision.Outcome != "" && decision.Outcome != metric_events.OutcomeDecided {
		prometheus.JudgmentFailures.WithLabelValues(evt.Provider, decision.Outcome).Inc()
	}
}

func (m *worker) StartWorkers(n int) {
	m.logger.WithField("workers", n).Info("starting metrics workers")
	for i := 0; i < n; i++ {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			for {
				select {
				case task := <-m.taskChan:
					m.run(task)
				case <-m.ctx.Done():
					return
				}
			}
		}()
	}
}

func (m *worker) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.WithField("panic", r).Error("metrics task panicked")
		}
	}()
	task()
}

func (m *worker) enqueueTask(task func(), requestID string) {
	if m.closed.Load() {
		return
	}
	select {
	case m.taskChan <- task:
	default:
		m.logger.WithField("request_id", requestID).
			Warn("taskChan is full, dropping metrics task")
	}
}
