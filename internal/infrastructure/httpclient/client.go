// Package httpclient is the single configured sender every backend call goes through.
// It attaches credentials, request ids and tracing, and normalizes failures into *Error.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/logger"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

// Default headers sent with every request.
const (
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"

	contentTypeJSON  = "application/json"
	defaultUserAgent = "cartlink-client/1.0"
)

// Config configures a Client.
type Config struct {
	BaseURL         string
	UserAgent       string
	Headers         map[string]string
	WithCredentials bool // keep cookies set by the backend and send them back
}

// Observer receives one call per finished request. telemetry.Metrics implements it.
type Observer interface {
	ObserveRequest(method, route string, status int, outcome string, elapsed time.Duration)
}

// Client sends requests relative to a fixed base URL.
// A single attempt is made per call. The only deadline is the caller's context.
type Client struct {
	httpClient   *http.Client
	baseURL      *url.URL
	headers      map[string]string
	credentials  CredentialProvider
	logger       *zap.Logger
	observer     Observer
	transport    http.RoundTripper
	tracer       trace.TracerProvider
	requestHooks []RequestInterceptor
	responseHook []ResponseInterceptor
}

// Option customizes a Client.
type Option func(*Client)

// WithCredentialProvider sets where the bearer token comes from.
func WithCredentialProvider(p CredentialProvider) Option {
	return func(c *Client) { c.credentials = p }
}

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver records each finished request.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithTransport replaces the base round tripper. It is still wrapped by otelhttp.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// WithTracerProvider sets the provider used for client spans instead of the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp }
}

// WithRequestInterceptor appends an interceptor that runs after the built-in ones.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(c *Client) { c.requestHooks = append(c.requestHooks, i) }
}

// WithResponseInterceptor appends an interceptor that runs after the built-in ones.
func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(c *Client) { c.responseHook = append(c.responseHook, i) }
}

// New creates a Client. BaseURL must be an absolute http(s) URL.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}
	base.Path = strings.TrimRight(base.Path, "/")

	c := &Client{
		baseURL: base,
		headers: map[string]string{
			HeaderContentType: contentTypeJSON,
			HeaderAccept:      contentTypeJSON,
			HeaderUserAgent:   defaultUserAgent,
		},
		logger:    zap.NewNop(),
		transport: http.DefaultTransport,
	}
	if cfg.UserAgent != "" {
		c.headers[HeaderUserAgent] = cfg.UserAgent
	}
	for k, v := range cfg.Headers {
		c.headers[k] = v
	}

	for _, opt := range opts {
		opt(c)
	}

	otelOpts := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + routeFromContext(r.Context())
		}),
	}
	if c.tracer != nil {
		otelOpts = append(otelOpts, otelhttp.WithTracerProvider(c.tracer))
	}

	c.httpClient = &http.Client{
		Transport: otelhttp.NewTransport(c.transport, otelOpts...),
	}
	if cfg.WithCredentials {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}

	// built-in interceptors run first, in this order
	builtin := []RequestInterceptor{requestIDInterceptor()}
	if c.credentials != nil {
		builtin = append(builtin, BearerInterceptor(c.credentials, c.logger))
	}
	c.requestHooks = append(builtin, c.requestHooks...)
	c.responseHook = append([]ResponseInterceptor{ErrorLogInterceptor(c.logger)}, c.responseHook...)

	return c, nil
}

// BaseURL returns the base URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Jar returns the cookie jar, or nil when credentials are not kept.
func (c *Client) Jar() http.CookieJar {
	return c.httpClient.Jar
}

// CloseIdleConnections drops keep-alive connections held by the transport.
func (c *Client) CloseIdleConnections() {
	if ci, ok := c.transport.(interface{ CloseIdleConnections() }); ok {
		ci.CloseIdleConnections()
	}
}

// Request describes one backend call. Path is relative to the base URL.
type Request struct {
	Method  string
	Path    string
	Route   string // path template used for span names and metric labels
	Query   url.Values
	Headers map[string]string
	Body    any
}

// Response is a fully read response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// JSON decodes the body into v. An empty body leaves v untouched.
func (r *Response) JSON(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// RequestOption adjusts a Request built by the verb helpers.
type RequestOption func(*Request)

// WithQuery sets query parameters.
func WithQuery(q url.Values) RequestOption {
	return func(r *Request) { r.Query = q }
}

// WithHeader sets one request header.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Headers == nil {
			r.Headers = make(map[string]string)
		}
		r.Headers[key] = value
	}
}

// WithRoute names the path template, e.g. "/merchants/products/:id".
func WithRoute(route string) RequestOption {
	return func(r *Request) { r.Route = route }
}

// WithBody attaches a JSON body to any verb.
func WithBody(body any) RequestOption {
	return func(r *Request) { r.Body = body }
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, buildRequest(http.MethodGet, path, nil, opts))
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, buildRequest(http.MethodPost, path, body, opts))
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, buildRequest(http.MethodPut, path, body, opts))
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, buildRequest(http.MethodDelete, path, nil, opts))
}

func buildRequest(method, path string, body any, opts []RequestOption) Request {
	req := Request{Method: method, Path: path, Body: body}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

// Do executes req once. Non-2xx responses are returned as a KindResponse *Error
// carrying the read response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Route == "" {
		req.Route = req.Path
	}
	info := RequestInfo{Method: req.Method, Route: req.Route}

	// the id travels on ctx so interceptor diagnostics match the X-Request-ID header
	id := req.Headers[HeaderRequestID]
	if id == "" {
		id = logger.RequestID(ctx)
	}
	if id == "" {
		id = uuid.NewString()
	}
	ctx = logger.WithRequestID(ctx, id)

	start := time.Now()
	resp, err := c.send(ctx, req, &info)
	resp, err = c.intercept(ctx, info, resp, err)

	if c.observer != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		} else if e, ok := AsError(err); ok {
			status = e.StatusCode()
		}
		c.observer.ObserveRequest(req.Method, req.Route, status, outcomeOf(err), time.Since(start))
	}
	return resp, err
}

func (c *Client) send(ctx context.Context, req Request, info *RequestInfo) (*Response, error) {
	u := c.resolve(req.Path, req.Query)
	info.URL = u.String()

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, setupError(*info, fmt.Errorf("marshaling request body: %w", err))
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(withRoute(ctx, req.Route), req.Method, info.URL, body)
	if err != nil {
		return nil, setupError(*info, fmt.Errorf("creating HTTP request: %w", err))
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	for _, hook := range c.requestHooks {
		if err := hook(httpReq.Context(), httpReq); err != nil {
			return nil, setupError(*info, err)
		}
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, noResponseError(*info, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, noResponseError(*info, fmt.Errorf("reading response body: %w", err))
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       raw,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, responseError(*info, resp)
	}
	return resp, nil
}

func (c *Client) intercept(ctx context.Context, info RequestInfo, resp *Response, err error) (*Response, error) {
	for _, hook := range c.responseHook {
		resp, err = hook(ctx, info, resp, err)
	}
	return resp, err
}

// resolve joins path onto the base URL path, keeping any base prefix such as /api.
func (c *Client) resolve(path string, query url.Values) *url.URL {
	u := *c.baseURL
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u.Path = c.baseURL.Path + path
	u.RawPath = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return &u
}

func outcomeOf(err error) string {
	if err == nil {
		return telemetry.OutcomeSuccess
	}
	e, ok := AsError(err)
	if !ok {
		return telemetry.OutcomeSetup
	}
	switch e.Kind {
	case KindResponse:
		return telemetry.OutcomeResponse
	case KindNoResponse:
		return telemetry.OutcomeNoResponse
	default:
		return telemetry.OutcomeSetup
	}
}

type routeKey struct{}

func withRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if r, ok := ctx.Value(routeKey{}).(string); ok {
		return r
	}
	return "request"
}
