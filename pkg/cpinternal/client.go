/*
Copyright 2024-2025 the Unikorn Authors.
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cpinternal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
)

// Options control how the client talks to the service.
type Options struct {
	BaseURL        string
	RequestTimeout time.Duration
	LogRequests    bool
	LogResponses   bool
}

// AddFlags registers the client flags.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.BaseURL, "base-url", DefaultBaseURL, "Base URL of the cp_internal service")
	f.DurationVar(&o.RequestTimeout, "request-timeout", 30*time.Second, "Timeout applied to every HTTP request")
	f.BoolVar(&o.LogRequests, "log-requests", false, "Log the status and duration of every request")
	f.BoolVar(&o.LogResponses, "log-responses", false, "Log every response body")
}

// ResponseValidator checks a response against the documented API contract.
type ResponseValidator interface {
	ValidateResponse(ctx context.Context, req *http.Request, path string, status int, header http.Header, body []byte) error
}

// ClientOption customizes an APIClient.
type ClientOption func(*APIClient)

// WithLogger sets the logger, the default discards everything.
func WithLogger(logger logr.Logger) ClientOption {
	return func(c *APIClient) {
		c.log = logger
	}
}

// WithHTTPClient replaces the HTTP client, the request timeout is left as is.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *APIClient) {
		c.client = client
	}
}

// WithResponseValidator checks every expected response against the API contract.
func WithResponseValidator(validator ResponseValidator) ClientOption {
	return func(c *APIClient) {
		c.validator = validator
	}
}

// APIClient talks to the cp_internal authentication endpoints.
type APIClient struct {
	baseURL   string
	client    *http.Client
	options   *Options
	endpoints *Endpoints
	validator ResponseValidator
	log       logr.Logger
}

// Ensure the client satisfies the interface consumers program against.
var _ Authenticator = &APIClient{}

// NewAPIClient returns a new client, an empty base URL means the default one.
func NewAPIClient(options *Options, opts ...ClientOption) *APIClient {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &APIClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: options.RequestTimeout,
		},
		options:   options,
		endpoints: NewEndpoints(),
		log:       logr.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// logError logs a generic error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, msg string) {
	c.log.Error(err, msg, "method", method, "path", path, "duration", duration, "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

// logUnexpectedStatus logs an unexpected HTTP status code.
func (c *APIClient) logUnexpectedStatus(method, path string, expectedStatus, actualStatus int, body, traceParent string) {
	c.log.Info("unexpected status", "method", method, "path", path, "expected", expectedStatus, "got", actualStatus, "body", body, "traceparent", traceParent)
	c.logTraceContext(traceParent)
}

func (c *APIClient) logTraceContext(traceParent string) {
	c.log.Info("use the trace ID to search logs for this request", "traceID", extractTraceID(traceParent))
}

//nolint:cyclop // straight line request handling reads best in one place
func (c *APIClient) doRequest(ctx context.Context, method, path string, body io.Reader, session *Session, expectedStatus int) (*http.Response, []byte, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=cp-internal")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if session != nil {
		req.Header.Set("Authorization", session.AuthorizationHeader())
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceParent, err, "reading response body")
		return resp, nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.options.LogRequests {
		c.log.Info("request complete", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.options.LogResponses && len(respBody) > 0 {
		c.log.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	if expectedStatus > 0 && resp.StatusCode != expectedStatus {
		c.logUnexpectedStatus(method, path, expectedStatus, resp.StatusCode, string(respBody), traceParent)

		return resp, respBody, &UnexpectedStatusError{
			Method:   method,
			Path:     path,
			Expected: expectedStatus,
			Actual:   resp.StatusCode,
			Body:     string(respBody),
			TraceID:  extractTraceID(traceParent),
		}
	}

	if c.validator != nil {
		if err := c.validator.ValidateResponse(ctx, req, path, resp.StatusCode, resp.Header, respBody); err != nil {
			c.logError(method, path, duration, traceParent, err, "response violates API contract")
			return resp, respBody, fmt.Errorf("validating response: %w", err)
		}
	}

	return resp, respBody, nil
}

func (c *APIClient) postLogin(ctx context.Context, request LoginRequest, expectedStatus int) (*http.Response, []byte, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling login body: %w", err)
	}

	return c.doRequest(ctx, http.MethodPost, c.endpoints.Login(), bytes.NewReader(body), nil, expectedStatus)
}

// Login exchanges credentials for a session token, anything but a 200 is an error.
func (c *APIClient) Login(ctx context.Context, request LoginRequest) (*LoginResponse, error) {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.postLogin(ctx, request, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	var response LoginResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling login response: %w", ErrMalformedResponse, err)
	}

	return &response, nil
}

// AttemptLogin posts credentials and reports whatever the service said.
// Only transport failures are errors.
func (c *APIClient) AttemptLogin(ctx context.Context, request LoginRequest) (*LoginAttempt, error) {
	//nolint:bodyclose // response body is closed in doRequest
	resp, respBody, err := c.postLogin(ctx, request, 0)
	if err != nil {
		return nil, fmt.Errorf("attempting login: %w", err)
	}

	return &LoginAttempt{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}

// Whoami returns the identity the session belongs to.
func (c *APIClient) Whoami(ctx context.Context, session *Session) (*Identity, error) {
	if session == nil {
		return nil, ErrNoSession
	}

	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, http.MethodGet, c.endpoints.Whoami(), nil, session, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("getting identity: %w", err)
	}

	var identity Identity
	if err := json.Unmarshal(respBody, &identity); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling identity response: %w", ErrMalformedResponse, err)
	}

	if err := json.Unmarshal(respBody, &identity.Raw); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling identity response: %w", ErrMalformedResponse, err)
	}

	return &identity, nil
}
