// Package transport is the console's HTTP layer: it attaches the bearer
// token, speaks the platform's response envelope and converts failures
// into the error taxonomy the feature layer reacts to.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/erp/console/config"
	"github.com/erp/console/domain/shared"
)

// HeaderSuppressError opts a single request out of the global error notifier
const HeaderSuppressError = "X-Suppress-Error"

// TokenProvider supplies the current bearer token, empty when logged out
type TokenProvider func() string

// Notifier receives every unsuppressed API failure. The UI layer hangs its
// toast/modal equivalent here; errors are still returned to the caller.
type Notifier func(err *APIError)

// Client wraps net/http with the console's request conventions
type Client struct {
	api            config.APIConfig
	httpClient     *http.Client
	logger         *zap.Logger
	token          TokenProvider
	notifier       Notifier
	onUnauthorized func()
}

// Option configures a Client at construction time
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithNotifier installs the global error notifier
func WithNotifier(n Notifier) Option {
	return func(c *Client) { c.notifier = n }
}

// WithUnauthorizedHook installs the forced-logout hook run on 401s
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client for the configured API
func New(api config.APIConfig, token TokenProvider, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		api:        api,
		httpClient: &http.Client{Timeout: api.RequestTimeout},
		logger:     log.Named("transport"),
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestOption adjusts a single request
type RequestOption func(*requestState)

type requestState struct {
	suppressError bool
	authExempt    bool
	query         url.Values
}

// WithSuppressError sets X-Suppress-Error and skips the global notifier
func WithSuppressError() RequestOption {
	return func(s *requestState) { s.suppressError = true }
}

// WithAuthExempt marks the request as the login call itself: a 401 from it
// must not trigger the forced-logout hook
func WithAuthExempt() RequestOption {
	return func(s *requestState) { s.authExempt = true }
}

// WithQuery attaches query parameters to the request
func WithQuery(q url.Values) RequestOption {
	return func(s *requestState) { s.query = q }
}

// envelope is the platform's response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *errorInfo      `json:"error,omitempty"`
	Meta    *shared.Meta    `json:"meta,omitempty"`
}

type errorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Get issues a GET and decodes the envelope data into out
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) (*shared.Meta, error) {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST with a JSON body
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) (*shared.Meta, error) {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues a PUT with a JSON body
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) (*shared.Meta, error) {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

// Patch issues a PATCH with a JSON body
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) (*shared.Meta, error) {
	return c.do(ctx, http.MethodPatch, path, body, out, opts...)
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, opts...)
	return err
}

// PostMultipart issues a POST with multipart/form-data. Login and file
// upload are the only non-JSON requests the platform accepts.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, out any, opts ...RequestOption) (*shared.Meta, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("writing multipart field %q: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}
	return c.doRaw(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), out, opts...)
}

// UploadFile issues a POST with a single file part plus extra fields
func (c *Client) UploadFile(ctx context.Context, path, fieldName, fileName string, file io.Reader, fields map[string]string, out any, opts ...RequestOption) (*shared.Meta, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fieldName, fileName)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copying file content: %w", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("writing multipart field %q: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}
	return c.doRaw(ctx, http.MethodPost, path, &buf, mw.FormDataContentType(), out, opts...)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) (*shared.Meta, error) {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, path, reader, contentType, out, opts...)
}

func (c *Client) doRaw(ctx context.Context, method, path string, body io.Reader, contentType string, out any, opts ...RequestOption) (*shared.Meta, error) {
	state := &requestState{}
	for _, opt := range opts {
		opt(state)
	}

	endpoint := c.api.Endpoint(path)
	if state.query != nil && len(state.query) > 0 {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		endpoint += sep + state.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	// Request interceptors: auth header, content type, suppress flag
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.api.UserAgent)
	if state.suppressError {
		req.Header.Set(HeaderSuppressError, "true")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := newNetworkError(err)
		c.notify(apiErr, state)
		return nil, apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := newNetworkError(err)
		c.notify(apiErr, state)
		return nil, apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.decodeError(resp.StatusCode, raw)
		if apiErr.IsAuth() && !state.authExempt && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		c.notify(apiErr, state)
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Code),
		)
		return nil, apiErr
	}

	if out == nil {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decoding response envelope: %w", err)
	}
	if env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decoding response data: %w", err)
		}
	}
	return env.Meta, nil
}

// decodeError converts a non-2xx body into an APIError, falling back to a
// generic message when the envelope is absent or malformed
func (c *Client) decodeError(status int, raw []byte) *APIError {
	apiErr := &APIError{
		Kind:       kindForStatus(status),
		StatusCode: status,
		Message:    http.StatusText(status),
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		if env.Error.Message != "" {
			apiErr.Message = env.Error.Message
		}
		apiErr.Fields = env.Error.Fields
	}
	return apiErr
}

// notify runs the global notifier unless the request opted out. The error
// is always returned to the caller regardless.
func (c *Client) notify(apiErr *APIError, state *requestState) {
	if state.suppressError || c.notifier == nil {
		return
	}
	c.notifier(apiErr)
}
