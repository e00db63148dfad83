package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/NeuralTrust/ContentGuard/pkg/domain/moderation"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/httpx"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers"
	"github.com/NeuralTrust/ContentGuard/pkg/infra/providers/factory"
	"github.com/sirupsen/logrus"
)

// Outcome classifies how a decision was reached.
type Outcome string

const (
	OutcomeDecided       Outcome = "decided"
	OutcomeConfiguration Outcome = "configuration_error"
	OutcomeUpstream      Outcome = "upstream_error"
	OutcomeBreakerOpen   Outcome = "breaker_open"
	OutcomeParse         Outcome = "parse_error"
	OutcomeSystem        Outcome = "system_error"
)

const missingCredentialMessage = "Content moderation is not configured: the model credential is missing. Upload blocked for safety."

type Settings struct {
	Provider       string
	ProviderConfig providers.Config
	// Timeout bounds the judgment call. Zero leaves it to the caller's context.
	Timeout time.Duration
}

type Decision struct {
	Result   domain.Result
	Outcome  Outcome
	Rule     Rule
	Provider string
	Model    string
	Usage    providers.Usage
	Latency  time.Duration
	Err      error
}

//go:generate mockery --name=Analyzer --dir=. --output=./mocks --filename=analyzer_mock.go --case=underscore --with-expecter
type Analyzer interface {
	Moderate(ctx context.Context, req domain.Request) Decision
}

type analyzer struct {
	logger   *logrus.Logger
	locator  factory.ProviderLocator
	breaker  httpx.CircuitBreaker
	settings Settings
}

// NewAnalyzer wires judgment, parsing and policy. breaker may be nil.
func NewAnalyzer(
	logger *logrus.Logger,
	locator factory.ProviderLocator,
	breaker httpx.CircuitBreaker,
	settings Settings,
) Analyzer {
	return &analyzer{
		logger:   logger,
		locator:  locator,
		breaker:  breaker,
		settings: settings,
	}
}

// Moderate always returns a well formed decision. Every failure resolves to a
// failed result.
func (a *analyzer) Moderate(ctx context.Context, req domain.Request) (decision Decision) {
	start := time.Now()
	decision.Provider = a.settings.Provider
	defer func() {
		if r := recover(); r != nil {
			decision.Result = SystemErrorResult()
			decision.Outcome = OutcomeSystem
			decision.Err = fmt.Errorf("panic during moderation: %v", r)
			a.logger.WithField("panic", r).Error("moderation panicked, blocking content")
		}
		decision.Latency = time.Since(start)
	}()

	if !a.settings.ProviderConfig.Credentials.HasCredential(a.settings.Provider) {
		decision.Result = NewErrorResult(missingCredentialMessage, domain.CategoryConfigurationError)
		decision.Outcome = OutcomeConfiguration
		decision.Err = domain.ErrMissingCredential
		a.logger.WithField("provider", a.settings.Provider).Error("missing moderation credential, blocking content")
		return decision
	}

	judgment, err := a.judge(ctx, req)
	if err != nil {
		decision.Result = SystemErrorResult()
		decision.Outcome = OutcomeUpstream
		if httpx.IsOpen(err) {
			decision.Outcome = OutcomeBreakerOpen
		}
		decision.Err = err
		a.logger.WithError(err).WithFields(logrus.Fields{
			"provider": a.settings.Provider,
			"outcome":  decision.Outcome,
		}).Error("judgment call failed, blocking content")
		return decision
	}
	decision.Model = judgment.Model
	decision.Usage = judgment.Usage

	provisional, err := Parse(providers.TrimCodeFence(judgment.Text))
	if err != nil {
		decision.Result = provisional
		decision.Outcome = OutcomeParse
		decision.Err = err
		a.logger.WithError(err).WithField("judgment_id", judgment.ID).Warn("could not parse judgment, blocking content")
		return decision
	}

	result, escalation := Evaluate(provisional)
	decision.Result = result
	decision.Outcome = OutcomeDecided
	decision.Rule = escalation.Rule
	if provisional.Status == domain.StatusPassed && result.Status == domain.StatusFailed {
		a.logger.WithFields(logrus.Fields{
			"judgment_id": judgment.ID,
			"rule":        escalation.Rule,
			"issues":      len(result.Issues),
		}).Warn("model reported passed with issues, policy override applied")
	}
	return decision
}

// CountsAsJudgmentFailure reports whether err reflects upstream health. Bad
// input and caller cancellation do not.
func CountsAsJudgmentFailure(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return errors.Is(err, domain.ErrUpstream) || errors.Is(err, context.DeadlineExceeded)
}

func (a *analyzer) judge(ctx context.Context, req domain.Request) (*providers.Judgment, error) {
	client, err := a.locator.Get(a.settings.Provider)
	if err != nil {
		return nil, err
	}
	if a.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.settings.Timeout)
		defer cancel()
	}

	cfg := a.settings.ProviderConfig
	prompt := BuildPrompt(req)

	var judgment *providers.Judgment
	call := func() error {
		var callErr error
		judgment, callErr = client.Judge(ctx, &cfg, prompt)
		return callErr
	}
	if a.breaker != nil {
		err = a.breaker.Execute(call)
	} else {
		err = call()
	}
	if err != nil {
		return nil, err
	}
	if judgment == nil {
		return nil, errors.New("provider returned no judgment")
	}
	return judgment, nil
}
