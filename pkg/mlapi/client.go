// Package mlapi is the typed HTTP client for the energy prediction service.
// Every method maps one function call onto exactly one HTTP request with a
// per-call timeout and normalizes the outcome: the typed payload on success,
// a single *Error shape on any failure. There are no retries and no caching;
// when the integration is disabled the client never touches the network.
package mlapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"enercast/pkg/types"
)

// Defaults applied by New for zero Config fields.
const (
	DefaultBaseURL        = "http://localhost:5000"
	DefaultHealthTimeout  = 5 * time.Second
	DefaultPredictTimeout = 30 * time.Second
	DefaultRequestTimeout = 10 * time.Second
	DefaultConnectTimeout = 5 * time.Second
)

const (
	defaultUserAgent = "enercast-mlapi/1"
	// Responses are small JSON documents; anything past this is a server bug.
	maxResponseBytes = 1 << 20
)

// Config configures a Client. The zero value yields a disabled client
// pointed at DefaultBaseURL.
type Config struct {
	// BaseURL of the prediction service, without trailing slash.
	BaseURL string
	// Enabled gates all traffic. When false every call short-circuits with
	// a disabled error and no network I/O happens.
	Enabled bool
	// APIKey, when set, is sent as a bearer token.
	APIKey string
	// HealthTimeout bounds Health and Available. Zero means 5s.
	HealthTimeout time.Duration
	// PredictTimeout bounds Predict and Validate. Zero means 30s.
	PredictTimeout time.Duration
	// RequestTimeout bounds the remaining calls. Zero means 10s.
	RequestTimeout time.Duration
	// ConnectTimeout bounds dialing when the built-in transport is used.
	// Zero means 5s.
	ConnectTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// RateLimit caps outbound calls per second. Zero means no limiter.
	RateLimit rate.Limit
	// RateBurst is the limiter burst; zero means 1 when RateLimit is set.
	RateBurst int
	// HTTPClient overrides the built-in transport, mainly for tests. The
	// per-call timeouts still apply via request contexts.
	HTTPClient *http.Client
	// Logger receives per-call debug lines. The zero value logs nothing.
	Logger zerolog.Logger
}

// Client talks to the prediction service. Safe for concurrent use.
type Client struct {
	baseURL        string
	enabled        bool
	apiKey         string
	userAgent      string
	healthTimeout  time.Duration
	predictTimeout time.Duration
	reqTimeout     time.Duration
	hc             *http.Client
	limiter        *rate.Limiter
	log            zerolog.Logger
}

// New builds a Client from cfg, applying defaults to zero fields. When no
// HTTPClient is injected it constructs one with a connect-timeout dialer and
// a pooled transport; the overall client Timeout stays 0 because every
// request carries a context deadline instead.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HealthTimeout <= 0 {
		cfg.HealthTimeout = DefaultHealthTimeout
	}
	if cfg.PredictTimeout <= 0 {
		cfg.PredictTimeout = DefaultPredictTimeout
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	hc := cfg.HTTPClient
	if hc == nil {
		tr := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.ConnectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
		hc = &http.Client{Transport: tr, Timeout: 0}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(cfg.RateLimit, burst)
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		enabled:        cfg.Enabled,
		apiKey:         cfg.APIKey,
		userAgent:      cfg.UserAgent,
		healthTimeout:  cfg.HealthTimeout,
		predictTimeout: cfg.PredictTimeout,
		reqTimeout:     cfg.RequestTimeout,
		hc:             hc,
		limiter:        limiter,
		log:            cfg.Logger,
	}
}

// Enabled reports whether the integration is switched on.
func (c *Client) Enabled() bool { return c.enabled }

// BaseURL returns the normalized service base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Health calls GET /api/health. Unlike every other endpoint the health
// response is not enveloped; HTTP 200 is success.
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	var out types.HealthStatus
	err := c.do(ctx, call{
		op:      "health",
		method:  http.MethodGet,
		path:    "/api/health",
		timeout: c.healthTimeout,
		out:     &out,
	})
	if err != nil {
		if !IsDisabled(err) {
			setServiceUp(false)
		}
		return nil, err
	}
	setServiceUp(true)
	return &out, nil
}

// Available reports whether the service is reachable and answering health
// checks. A disabled client is never available.
func (c *Client) Available(ctx context.Context) bool {
	_, err := c.Health(ctx)
	return err == nil
}

// ModelInfo calls GET /api/model/info.
func (c *Client) ModelInfo(ctx context.Context) (*types.ModelInfo, error) {
	var out types.InfoResponse
	err := c.do(ctx, call{
		op:        "model_info",
		method:    http.MethodGet,
		path:      "/api/model/info",
		timeout:   c.reqTimeout,
		out:       &out,
		enveloped: true,
	})
	if err != nil {
		return nil, err
	}
	if out.Model == nil {
		return nil, &Error{Op: "model_info", Code: CodeDecode, Status: http.StatusOK, Message: "response missing model"}
	}
	return out.Model, nil
}

// Predict calls POST /api/predict with the feature batch and returns one
// prediction per element, in request order.
func (c *Client) Predict(ctx context.Context, features []types.FeatureInput) ([]types.PredictionPoint, error) {
	var out types.PredictResponse
	err := c.do(ctx, call{
		op:        "predict",
		method:    http.MethodPost,
		path:      "/api/predict",
		timeout:   c.predictTimeout,
		body:      types.PredictRequest{Features: features},
		out:       &out,
		enveloped: true,
	})
	if err != nil {
		return nil, err
	}
	if out.Predictions == nil {
		out.Predictions = []types.PredictionPoint{}
	}
	return out.Predictions, nil
}

// PredictOne scores a single feature record.
func (c *Client) PredictOne(ctx context.Context, f types.FeatureInput) (*types.PredictionPoint, error) {
	preds, err := c.Predict(ctx, []types.FeatureInput{f})
	if err != nil {
		return nil, err
	}
	if len(preds) != 1 {
		return nil, &Error{Op: "predict", Code: CodeDecode, Status: http.StatusOK, Message: "expected one prediction"}
	}
	return &preds[0], nil
}

// Validate calls POST /api/validate and returns the range-check report.
func (c *Client) Validate(ctx context.Context, features []types.FeatureInput) (*types.ValidationReport, error) {
	var out types.ValidateResponse
	err := c.do(ctx, call{
		op:        "validate",
		method:    http.MethodPost,
		path:      "/api/validate",
		timeout:   c.predictTimeout,
		body:      types.ValidateRequest{Features: features},
		out:       &out,
		enveloped: true,
	})
	if err != nil {
		return nil, err
	}
	report := out.ValidationReport
	if report.Issues == nil {
		report.Issues = []types.ValidationIssue{}
	}
	return &report, nil
}

// ModelMetrics calls GET /api/metrics for the model's evaluation scores.
func (c *Client) ModelMetrics(ctx context.Context) (*types.ModelMetrics, error) {
	var out types.MetricsResponse
	err := c.do(ctx, call{
		op:        "model_metrics",
		method:    http.MethodGet,
		path:      "/api/metrics",
		timeout:   c.reqTimeout,
		out:       &out,
		enveloped: true,
	})
	if err != nil {
		return nil, err
	}
	if out.Metrics == nil {
		return nil, &Error{Op: "model_metrics", Code: CodeDecode, Status: http.StatusOK, Message: "response missing metrics"}
	}
	return out.Metrics, nil
}

// Reload calls POST /api/model/reload, asking the service to re-read its
// model artifact.
func (c *Client) Reload(ctx context.Context) (*types.ReloadResult, error) {
	var out types.ReloadResponse
	err := c.do(ctx, call{
		op:        "reload",
		method:    http.MethodPost,
		path:      "/api/model/reload",
		timeout:   c.reqTimeout,
		out:       &out,
		enveloped: true,
	})
	if err != nil {
		return nil, err
	}
	return &out.ReloadResult, nil
}

// call describes one outbound request for do.
type call struct {
	op        string
	method    string
	path      string
	timeout   time.Duration
	body      any
	out       any
	enveloped bool
}

// do performs exactly one HTTP request and normalizes every failure mode
// into *Error: the disabled gate, limiter and context deadlines, transport
// errors, HTTP error statuses, enveloped failures and undecodable bodies.
func (c *Client) do(ctx context.Context, cl call) error {
	if !c.enabled {
		return &Error{Op: cl.op, Code: CodeDisabled, Message: "prediction service integration disabled"}
	}

	ctx, cancel := context.WithTimeout(ctx, cl.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			observeCall(cl.op, CodeTimeout, 0)
			return &Error{Op: cl.op, Code: CodeTimeout, Message: "rate limiter wait exceeded deadline", Err: err}
		}
	}

	var rdr io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return &Error{Op: cl.op, Code: CodeBadRequest, Message: "unencodable request body", Err: err}
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, rdr)
	if err != nil {
		return &Error{Op: cl.op, Code: CodeBadRequest, Message: "building request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		nerr := c.transportError(cl.op, cl.timeout, err)
		observeCall(cl.op, nerr.Code, elapsed)
		c.log.Warn().Str("op", cl.op).Err(err).Msg("prediction service call failed")
		return nerr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		observeCall(cl.op, CodeDecode, elapsed)
		return &Error{Op: cl.op, Code: CodeDecode, Status: resp.StatusCode, Message: "reading response body", Err: err}
	}

	c.log.Debug().
		Str("op", cl.op).
		Str("method", cl.method).
		Str("path", cl.path).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("prediction service call")

	if err := normalize(cl, resp.StatusCode, body); err != nil {
		observeCall(cl.op, err.Code, elapsed)
		return err
	}
	observeCall(cl.op, "", elapsed)
	return nil
}

// transportError maps a failed round trip onto a timeout or unreachable
// error. Context expiry takes precedence over whatever the transport wrapped
// it into.
func (c *Client) transportError(op string, timeout time.Duration, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Op: op, Code: CodeTimeout, Message: "no response within " + timeout.String(), Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Op: op, Code: CodeTimeout, Message: "call canceled", Err: err}
	}
	return &Error{Op: op, Code: CodeUnreachable, Message: "prediction service unreachable", Err: err}
}

// normalize applies the response-shape rules shared by all endpoints: error
// statuses carry the enveloped message when one decodes, 503 means the model
// is not loaded, and enveloped 200s must report success=true.
func normalize(cl call, status int, body []byte) *Error {
	var env types.Envelope
	envErr := json.Unmarshal(body, &env)

	if status < 200 || status >= 300 {
		msg := strings.TrimSpace(env.Error)
		if msg == "" {
			msg = http.StatusText(status)
		}
		code := CodeRemote
		switch status {
		case http.StatusServiceUnavailable:
			code = CodeNotReady
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			code = CodeBadRequest
		}
		return &Error{Op: cl.op, Code: code, Status: status, Message: msg}
	}

	if cl.enveloped {
		if envErr != nil {
			return &Error{Op: cl.op, Code: CodeDecode, Status: status, Message: "malformed response body", Err: envErr}
		}
		if !env.Success {
			msg := strings.TrimSpace(env.Error)
			if msg == "" {
				msg = "service reported failure"
			}
			return &Error{Op: cl.op, Code: CodeRemote, Status: status, Message: msg}
		}
	}

	if cl.out != nil {
		if err := json.Unmarshal(body, cl.out); err != nil {
			return &Error{Op: cl.op, Code: CodeDecode, Status: status, Message: "malformed response body", Err: err}
		}
	}
	return nil
}
