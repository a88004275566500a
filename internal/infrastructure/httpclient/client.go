package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/yusufnuru/unimarket-client/pkg/errors"
	"github.com/yusufnuru/unimarket-client/pkg/logger"
)

// TokenExpiredMessage is the exact payload marker the backend sets on a 401
// caused by access-token expiry. Only this marker triggers a refresh.
const TokenExpiredMessage = "Token expired"

// Auth-lifecycle endpoints never trigger a refresh; a 401 from these is final.
var skipRefreshPaths = []string{
	"/auth/login",
	"/auth/refresh",
	"/auth/logout",
	"/password/reset",
	"/password/forgot",
}

// RefreshFunc re-establishes the session cookie. It runs at most once per
// burst of expired requests.
type RefreshFunc func(ctx context.Context) error

// Client wraps every request with credentialed cookies and recovers
// transparently from token expiry: on a qualifying 401 it refreshes the
// session once and replays the original request.
type Client struct {
	baseURL          *url.URL
	http             *http.Client
	refresh          RefreshFunc
	onSessionExpired func(ctx context.Context)
	group            singleflight.Group
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, apperrors.BadRequest("Invalid API base URL", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, apperrors.Internal("Failed to create cookie jar", err)
	}

	return &Client{
		baseURL: parsed,
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// SetRefreshFunc installs the session-refresh operation. Wired after
// construction because the auth usecase itself depends on this client.
func (c *Client) SetRefreshFunc(fn RefreshFunc) {
	c.refresh = fn
}

// SetSessionExpiredHook installs the logout side effects run when a refresh
// attempt fails.
func (c *Client) SetSessionExpiredHook(fn func(ctx context.Context)) {
	c.onSessionExpired = fn
}

// Jar exposes the cookie store, shared with the socket dialer so the
// websocket handshake carries the same credentials.
func (c *Client) Jar() http.CookieJar {
	return c.http.Jar
}

type refreshExemptKey struct{}

// WithoutRefresh marks a context so requests made under it bypass the
// refresh interceptor. The refresh flow itself runs under this mark, which
// keeps a failing /auth/me from re-entering the single-flight group.
func WithoutRefresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, refreshExemptKey{}, true)
}

func refreshExempt(ctx context.Context) bool {
	exempt, _ := ctx.Value(refreshExemptKey{}).(bool)
	return exempt
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, payload, "application/json", out)
}

func (c *Client) Patch(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := encodeBody(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, nil, payload, "application/json", out)
}

func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

// Form is a multipart payload: plain fields plus optional file parts.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

type FormFile struct {
	Field   string
	Name    string
	Content []byte
}

func (c *Client) PostMultipart(ctx context.Context, path string, form Form, out interface{}) error {
	body, contentType, err := encodeMultipart(form)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, nil, body, contentType, out)
}

func (c *Client) PatchMultipart(ctx context.Context, path string, form Form, out interface{}) error {
	body, contentType, err := encodeMultipart(form)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, path, nil, body, contentType, out)
}

func encodeBody(body interface{}) ([]byte, error) {
	if body == nil {
		return nil, nil
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.BadRequest("Failed to encode request body", err)
	}
	return payload, nil
}

func encodeMultipart(form Form) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range form.Fields {
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", apperrors.BadRequest("Failed to encode form field", err)
		}
	}
	for _, file := range form.Files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", apperrors.BadRequest("Failed to encode form file", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", apperrors.BadRequest("Failed to encode form file", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", apperrors.BadRequest("Failed to finalize form body", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// do performs one round trip plus, when the response qualifies, a single
// refresh-and-replay. The body is fully buffered so the replay is identical
// to the original request.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, contentType string, out interface{}) error {
	status, respBody, err := c.send(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}

	if status < 300 {
		return decodeInto(respBody, out)
	}

	if !c.shouldRefresh(ctx, path, status, respBody) {
		return apperrors.FromResponse(status, respBody)
	}

	originalErr := apperrors.TokenExpired(nil)

	if _, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		return nil, c.refresh(WithoutRefresh(ctx))
	}); err != nil {
		logger.Warn("Session refresh failed: %v", err)
		if c.onSessionExpired != nil {
			c.onSessionExpired(WithoutRefresh(ctx))
		}
		return originalErr
	}

	// Replay once. A second 401 on the replayed request is final.
	status, respBody, err = c.send(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	if status >= 300 {
		return apperrors.FromResponse(status, respBody)
	}
	return decodeInto(respBody, out)
}

func (c *Client) shouldRefresh(ctx context.Context, path string, status int, body []byte) bool {
	if status != http.StatusUnauthorized || c.refresh == nil || refreshExempt(ctx) {
		return false
	}
	for _, skip := range skipRefreshPaths {
		if strings.Contains(path, skip) {
			return false
		}
	}
	return apperrors.MessageOf(body) == TokenExpiredMessage
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body []byte, contentType string) (int, []byte, error) {
	target := c.baseURL.ResolveReference(&url.URL{Path: joinPath(c.baseURL.Path, path)})
	if query != nil {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return 0, nil, apperrors.BadRequest("Failed to build request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, apperrors.Transport("Request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, apperrors.Transport("Failed to read response", err)
	}

	return resp.StatusCode, respBody, nil
}

func decodeInto(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Internal("Failed to decode response", err)
	}
	return nil
}

func joinPath(base, path string) string {
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
