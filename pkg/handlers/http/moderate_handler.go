package http

import (
	"encoding/json"
	"strings"

	"github.com/NeuralTrust/ContentGuard/pkg/app/moderation"
	"github.com/NeuralTrust/ContentGuard/pkg/handlers/http/request"
	"github.com/NeuralTrust/ContentGuard/pkg/handlers/http/response"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/metrics"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/metrics/metric_events"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type moderateHandler struct {
	logger   *logrus.Logger
	analyzer moderation.Analyzer
	worker   metrics.Worker
}

func NewModerateHandler(logger *logrus.Logger, analyzer moderation.Analyzer, worker metrics.Worker) Handler {
	return &moderateHandler{
		logger:   logger,
		analyzer: analyzer,
		worker:   worker,
	}
}

// Handle @Summary Moderate user content
// @Description Judges an image and caption against the community guidelines. Every content decision, including upstream failures, is returned with status 200.
// @Tags Moderation
// @Accept json
// @Produce json
// @Param request body request.ModerateRequest true "Content to moderate"
// @Success 200 {object} moderation.Result "Moderation decision"
// @Failure 400 {object} map[string]interface{} "Missing filename or type"
// @Failure 401 {object} map[string]interface{} "Missing authorization header"
// @Router /moderate [post]
func (h *moderateHandler) Handle(c *fiber.Ctx) error {
	var req request.ModerateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		h.logger.WithError(err).Debug("failed to decode moderation request")
		return response.BadRequest(c, response.ErrInvalidJsonPayload)
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, response.ErrMissingFilenameType)
	}

	start := requestStart(c)
	decision := h.analyzer.Moderate(c.UserContext(), req.ToDomain())
	result := decision.Result

	evt := feedEvent(c, metric_events.NewDecisionEvent(start))
	evt.Provider = decision.Provider
	evt.Model = decision.Model
	evt.Decision = &metric_events.DecisionData{
		Filename:          req.Filename,
		DeclaredType:      req.Type,
		HasImage:          strings.TrimSpace(req.ImageData) != "",
		FileCount:         req.FileCount,
		Status:            string(result.Status),
		Confidence:        result.Confidence,
		ViolationCategory: result.Category(),
		IssueCount:        len(result.Issues),
		Outcome:           string(decision.Outcome),
		Rule:              string(decision.Rule),
	}
	h.worker.Process(evt)

	h.logger.WithFields(logrus.Fields{
		"request_id":         evt.RequestID,
		"filename":           req.Filename,
		"declared_type":      req.Type,
		"status":             result.Status,
		"violation_category": result.Category(),
		"issues":             len(result.Issues),
		"provider":           decision.Provider,
		"outcome":            decision.Outcome,
		"latency_ms":         decision.Latency.Milliseconds(),
	}).Info("moderation decision")

	return response.Success(c, result)
}
