// Package client implements actor.Client over HTTP using resty. Both calls are
// single POST requests against a configurable base address:
//
//	POST {base}/actors/{id}/schema  {"apiKey": ...}
//	POST {base}/actors/{id}/run     {"apiKey": ..., "input": {...}}
//
// The client performs no retries. A 2xx status signals success; any other
// status is returned as *actor.ResponseError.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/goliatone/go-actorrunner/pkg/actor"
	"github.com/goliatone/go-actorrunner/pkg/logger"
	"github.com/goliatone/go-actorrunner/pkg/value"
)

const (
	schemaPath = "/actors/{actorId}/schema"
	runPath    = "/actors/{actorId}/run"
)

// Client talks to the actor service.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  logger.Logger
}

var _ actor.Client = (*Client)(nil)

// Option configures the client.
type Option func(*config)

type config struct {
	timeout    time.Duration
	httpClient *http.Client
	logger     logger.Logger
	debug      bool
	headers    map[string]string
}

// WithTimeout sets the per-request timeout. Zero leaves requests unbounded.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = timeout
	}
}

// WithHTTPClient reuses an existing *http.Client (custom transports, tests).
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) {
		cfg.httpClient = client
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithDebug enables resty request/response dumps through the logger.
func WithDebug(enabled bool) Option {
	return func(cfg *config) {
		cfg.debug = enabled
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, val string) Option {
	return func(cfg *config) {
		if cfg.headers == nil {
			cfg.headers = make(map[string]string)
		}
		cfg.headers[key] = val
	}
}

// New builds a client for baseURL, which must be an absolute http(s) URL.
func New(baseURL string, options ...Option) (*Client, error) {
	base, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	cfg := &config{logger: logger.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	var rc *resty.Client
	if cfg.httpClient != nil {
		rc = resty.NewWithClient(cfg.httpClient)
	} else {
		rc = resty.New()
	}
	rc.SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(logger.Resty(cfg.logger)).
		SetDebug(cfg.debug)
	if cfg.timeout > 0 {
		rc.SetTimeout(cfg.timeout)
	}
	for k, v := range cfg.headers {
		rc.SetHeader(k, v)
	}

	return &Client{http: rc, baseURL: base, logger: cfg.logger}, nil
}

// BaseURL returns the normalised base address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchSchema requests the input schema and actor info for actorID.
func (c *Client) FetchSchema(ctx context.Context, actorID, credential string) (actor.SchemaResult, error) {
	body := value.Object(value.Member{Key: "apiKey", Value: value.String(credential)})

	resp, err := c.post(ctx, schemaPath, actorID, body)
	if err != nil {
		return actor.SchemaResult{}, err
	}
	if !resp.IsSuccess() {
		return actor.SchemaResult{}, actor.DecodeResponseError(resp.StatusCode(), resp.Body())
	}

	result, err := actor.DecodeSchemaResult(resp.Body())
	if err != nil {
		return actor.SchemaResult{}, &actor.TransportError{Op: "decode schema", Err: err}
	}
	return result, nil
}

// RunActor executes actorID with input.
func (c *Client) RunActor(ctx context.Context, actorID, credential string, input value.Value) (actor.RunResult, error) {
	if input.Kind() != value.KindObject {
		input = value.Object()
	}
	body := value.Object(
		value.Member{Key: "apiKey", Value: value.String(credential)},
		value.Member{Key: "input", Value: input},
	)

	resp, err := c.post(ctx, runPath, actorID, body)
	if err != nil {
		return actor.RunResult{}, err
	}
	if !resp.IsSuccess() {
		return actor.RunResult{}, actor.DecodeResponseError(resp.StatusCode(), resp.Body())
	}

	result, err := actor.DecodeRunResult(resp.Body())
	if err != nil {
		return actor.RunResult{}, &actor.TransportError{Op: "decode run", Err: err}
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path, actorID string, body value.Value) (*resty.Response, error) {
	if strings.TrimSpace(actorID) == "" {
		return nil, errors.New("client: actor id is required")
	}
	payload, err := body.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("client: encode body: %w", err)
	}

	c.logger.Debug("actor request", "path", path, "actor_id", actorID)
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("actorId", actorID).
		SetBody(payload).
		Post(path)
	if err != nil {
		return nil, &actor.TransportError{Op: "post " + path, Err: err}
	}
	c.logger.Debug("actor response", "path", path, "actor_id", actorID, "status", resp.StatusCode())
	return resp, nil
}

func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(raw), "/")
	if trimmed == "" {
		return "", errors.New("client: base url is required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("client: invalid base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("client: base url scheme must be http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("client: base url must have a host, got %q", raw)
	}
	return trimmed, nil
}
