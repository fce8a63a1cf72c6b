package cleantalk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/NeuralTrust/SpamShield/pkg/domain/verdict"
	"github.com/NeuralTrust/SpamShield/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const (
	DefaultServerURL = "https://moderate.cleantalk.org"
	apiPath          = "/api2.0"
	maxResponseSize  = 64 * 1024
)

// Client performs one verdict call per Check. It never retries.
//
//go:generate mockery --name=Client --dir=. --output=./mocks --filename=client_mock.go --case=underscore --with-expecter
type Client interface {
	Check(ctx context.Context, req *Request) (*verdict.Verdict, error)
}

type client struct {
	logger     *logrus.Logger
	httpClient httpx.Client
	breaker    httpx.CircuitBreaker
	endpoint   string
}

type Option func(*client)

func WithCircuitBreaker(breaker httpx.CircuitBreaker) Option {
	return func(c *client) {
		c.breaker = breaker
	}
}

func NewClient(logger *logrus.Logger, httpClient httpx.Client, serverURL string, opts ...Option) Client {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	if httpClient == nil {
		httpClient = httpx.NewFastHTTPClient()
	}
	c := &client{
		logger:     logger,
		httpClient: httpClient,
		endpoint:   strings.TrimRight(serverURL, "/") + apiPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) Check(ctx context.Context, req *Request) (*verdict.Verdict, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal verdict request: %w", err)
	}

	var result *verdict.Verdict
	call := func() error {
		v, err := c.call(ctx, payload)
		if err != nil {
			return err
		}
		result = v
		return nil
	}

	if c.breaker == nil {
		err = call()
	} else {
		err = c.breaker.Execute(call)
		if httpx.IsOpen(err) {
			err = verdict.NewRemoteUnavailable("circuit open", err)
		}
	}
	if err != nil {
		c.logger.WithError(err).WithField("method", req.MethodName).Warn("cleantalk verdict call failed")
		return nil, err
	}
	return result, nil
}

func (c *client) call(ctx context.Context, payload []byte) (*verdict.Verdict, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, verdict.NewRemoteUnavailable("invalid request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, verdict.NewRemoteUnavailable("transport", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, verdict.NewRemoteUnavailable("read response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, verdict.NewRemoteUnavailable(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	return ParseResponse(body)
}

// ParseResponse reads allow (0/1 or boolean) and comment from a verdict response.
// A service-level error (errno != 0) is reported as unavailable.
func ParseResponse(body []byte) (*verdict.Verdict, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, verdict.NewRemoteUnavailable("malformed response", err)
	}
	if errno := v.GetInt("errno"); errno != 0 {
		return nil, verdict.NewRemoteUnavailable(
			"service error",
			fmt.Errorf("errno %d: %s", errno, v.GetStringBytes("errstr")),
		)
	}

	allowValue := v.Get("allow")
	if allowValue == nil {
		return nil, verdict.NewRemoteUnavailable("malformed response", fmt.Errorf("missing allow field"))
	}
	var allow bool
	switch allowValue.Type() {
	case fastjson.TypeNumber:
		allow = allowValue.GetInt() != 0
	case fastjson.TypeTrue:
		allow = true
	case fastjson.TypeFalse:
		allow = false
	default:
		return nil, verdict.NewRemoteUnavailable("malformed response", fmt.Errorf("allow has type %s", allowValue.Type()))
	}

	return &verdict.Verdict{
		Allow:   allow,
		Comment: string(v.GetStringBytes("comment")),
	}, nil
}
