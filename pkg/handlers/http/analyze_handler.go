package http

import (
	"encoding/json"

	"github.com/NeuralTrust/ContentGuard/pkg/app/analysis"
	"github.com/NeuralTrust/ContentGuard/pkg/handlers/http/request"
	"github.com/NeuralTrust/ContentGuard/pkg/handlers/http/response"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/metrics"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/metrics/metric_events"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type analyzeHandler struct {
	logger   *logrus.Logger
	analyzer analysis.Analyzer
	worker   metrics.Worker
}

func NewAnalyzeHandler(logger *logrus.Logger, analyzer analysis.Analyzer, worker metrics.Worker) Handler {
	return &analyzeHandler{
		logger:   logger,
		analyzer: analyzer,
		worker:   worker,
	}
}

// Handle @Summary Analyze a comment or story
// @Description Returns free-form insights (sentiment, topics, engagement) for a comment or story.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param request body request.AnalyzeRequest true "Content to analyze"
// @Success 200 {object} response.AnalyzeResponse "Analysis"
// @Failure 400 {object} response.AnalyzeResponse "Invalid request"
// @Failure 500 {object} response.AnalyzeResponse "Analysis failed"
// @Router /analyze [post]
func (h *analyzeHandler) Handle(c *fiber.Ctx) error {
	var req request.AnalyzeRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.AnalyzeResponse{Error: response.ErrInvalidJsonPayload})
	}
	in := req.ToDomain()
	if err := analysis.Validate(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(response.AnalyzeResponse{Error: err.Error()})
	}

	start := requestStart(c)
	result, err := h.analyzer.Analyze(c.UserContext(), in)

	evt := feedEvent(c, metric_events.NewAnalysisEvent(start))
	evt.Analysis = &metric_events.AnalysisData{Kind: req.Type, Success: err == nil}
	if err != nil {
		evt.Analysis.Error = err.Error()
	} else {
		evt.Model = result.Model
	}
	h.worker.Process(evt)

	if err != nil {
		h.logger.WithError(err).WithField("type", req.Type).Error("content analysis failed")
		return c.Status(fiber.StatusInternalServerError).JSON(response.AnalyzeResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusOK).JSON(response.AnalyzeResponse{
		Success:  true,
		Analysis: result.Analysis,
		Type:     string(result.Kind),
	})
}
