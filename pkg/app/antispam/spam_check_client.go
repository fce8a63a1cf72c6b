package antispam

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeuralTrust/SpamShield/pkg/domain/settings"
	"github.com/NeuralTrust/SpamShield/pkg/domain/submission"
	"github.com/NeuralTrust/SpamShield/pkg/domain/verdict"
	"github.com/NeuralTrust/SpamShield/pkg/infra/cleantalk"
	"github.com/NeuralTrust/SpamShield/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

const DefaultTimeout = 5 * time.Second

// SpamCheckClient obtains a verdict for a single storefront submission.
//
//go:generate mockery --name=SpamCheckClient --dir=. --output=./mocks --filename=spam_check_client_mock.go --case=underscore --with-expecter
type SpamCheckClient interface {
	CheckSubmission(ctx context.Context, sc submission.Context, mode submission.Mode) (*verdict.Verdict, error)
}

type spamCheckClient struct {
	logger   *logrus.Logger
	settings settings.Provider
	remote   cleantalk.Client
	agent    string
	timeout  time.Duration
}

func NewSpamCheckClient(
	logger *logrus.Logger,
	provider settings.Provider,
	remote cleantalk.Client,
	agent string,
	timeout time.Duration,
) SpamCheckClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &spamCheckClient{
		logger:   logger,
		settings: provider,
		remote:   remote,
		agent:    agent,
		timeout:  timeout,
	}
}

func (c *spamCheckClient) CheckSubmission(
	ctx context.Context,
	sc submission.Context,
	mode submission.Mode,
) (*verdict.Verdict, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("invalid check mode %q", mode)
	}

	current, err := c.settings.Current(ctx)
	if err != nil {
		c.logger.WithError(err).Error("failed to read antispam settings, letting submission through")
		prometheus.RecordVerdict(string(sc.Type), prometheus.OutcomeSkipped)
		return verdict.Allowed(), nil
	}
	if current.APIKey == "" {
		prometheus.RecordVerdict(string(sc.Type), prometheus.OutcomeSkipped)
		return verdict.Allowed(), nil
	}

	req, err := cleantalk.NewRequest(sc, mode, current.APIKey, c.agent)
	if err != nil {
		return nil, fmt.Errorf("failed to build verdict request: %w", err)
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	v, err := c.remote.Check(callCtx, req)
	prometheus.ObserveRemoteLatency(req.MethodName, float64(time.Since(start).Milliseconds()))

	if err != nil {
		prometheus.RecordVerdict(string(sc.Type), prometheus.OutcomeUnavailable)
		if !errors.Is(err, verdict.ErrRemoteUnavailable) {
			err = verdict.NewRemoteUnavailable("check failed", err)
		}
		return nil, err
	}

	outcome := prometheus.OutcomeAllow
	if v.Blocked() {
		outcome = prometheus.OutcomeBlock
	}
	prometheus.RecordVerdict(string(sc.Type), outcome)

	c.logger.WithFields(logrus.Fields{
		"type":    sc.Type,
		"method":  req.MethodName,
		"allow":   v.Allow,
		"latency": time.Since(start).String(),
	}).Debug("verdict received")

	return v, nil
}
