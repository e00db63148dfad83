package http

import (
	"testing"

	analysisMocks "github.com/NeuralTrust/ContentGuard/pkg/app/analysis/mocks"
	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/analysis"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/logger"
	metricsMocks "github.com/NeuralTrust/ContentGuard/pkg/infra/metrics/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAnalyzeApp() (*fiber.App, *analysisMocks.Analyzer, *metricsMocks.Worker) {
	analyzer := new(analysisMocks.Analyzer)
	worker := new(metricsMocks.Worker)
	worker.On("Process", mock.Anything).Maybe()
	handler := NewAnalyzeHandler(logger.Discard(), analyzer, worker)

	app := fiber.New()
	app.Post("/analyze", handler.Handle)
	return app, analyzer, worker
}

func TestAnalyzeHandler_Success(t *testing.T) {
	app, analyzer, _ := setupAnalyzeApp()
	analyzer.On("Analyze", mock.Anything, domain.Request{Kind: domain.KindComment, Content: "love it"}).
		Return(&domain.Result{Kind: domain.KindComment, Analysis: `{"sentiment":"positive"}`, Model: "gpt-4o-mini"}, nil)

	status, body := postJSON(t, app, "/analyze", `{"type":"comment","content":"love it"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"success":true,"analysis":"{\"sentiment\":\"positive\"}","type":"comment"}`, body)
}

func TestAnalyzeHandler_BadRequests(t *testing.T) {
	app, analyzer, _ := setupAnalyzeApp()

	status, body := postJSON(t, app, "/analyze", `not json`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"success":false,"error":"Invalid request body"}`, body)

	status, body = postJSON(t, app, "/analyze", `{"type":"reel","content":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"success":false,"error":"type must be 'comment' or 'story'"}`, body)

	status, _ = postJSON(t, app, "/analyze", `{"type":"story","content":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	analyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestAnalyzeHandler_MissingCredential(t *testing.T) {
	app, analyzer, _ := setupAnalyzeApp()
	analyzer.On("Analyze", mock.Anything, mock.Anything).Return(nil, domain.ErrMissingCredential)

	status, body := postJSON(t, app, "/analyze", `{"type":"story","content":"beach"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"success":false,"error":"analysis provider API key not configured"}`, body)
}
