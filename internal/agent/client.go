package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/logger"
)

const ErrRateLimited = "Plan generation is cooling down, try again in a few seconds"

// Client posts requests to the planning agent. It never retries; a failed
// call is surfaced once and the user decides whether to ask again.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = constants.DefaultAgentURL
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Every(time.Minute/constants.AgentRequestsPerMinute), 1),
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithLimiter replaces the request throttle.
func (c *Client) WithLimiter(l *rate.Limiter) *Client {
	c.limiter = l
	return c
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Generate sends req and classifies the reply. Transport problems and
// non-2xx statuses come back as FailureResult.
func (c *Client) Generate(ctx context.Context, req Request) Result {
	if !c.limiter.Allow() {
		return FailureResult{Message: ErrRateLimited}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return FailureResult{Message: fmt.Sprintf("could not encode plan request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return FailureResult{Message: fmt.Sprintf("could not build plan request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Warn("planning agent unreachable", "endpoint", c.endpoint, "error", err)
		return FailureResult{Message: fmt.Sprintf("Could not reach the planning agent: %v", err)}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return FailureResult{Message: fmt.Sprintf("Could not read the planning agent response: %v", err)}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		logger.Warn("planning agent returned an error status", "status", res.StatusCode)
		if r, ok := ParseResponse(data).(FailureResult); ok {
			return r
		}
		return FailureResult{Message: fmt.Sprintf("planning agent failed with status %d", res.StatusCode)}
	}

	result := ParseResponse(data)
	if _, ok := result.(NotRecognized); ok {
		logger.Warn("planning agent response not recognized", "bytes", len(data))
	}
	return result
}
