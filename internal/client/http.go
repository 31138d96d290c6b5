package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alfredjeanlab/cafedash/internal/idgen"
	"github.com/alfredjeanlab/cafedash/internal/session"
)

// RequestIDHeader carries the per-request trace ID.
const RequestIDHeader = "X-Request-ID"

// HTTPClient implements CafeClient against the cafe REST API.
type HTTPClient struct {
	baseURL    string
	session    *session.Session
	timeout    time.Duration
	httpClient *http.Client
	now        func() time.Time
}

// NewHTTPClient creates a client targeting baseURL (e.g.
// "http://localhost:8080/api"). The session supplies the bearer token; a nil
// session sends anonymous requests. A positive timeout bounds every request.
func NewHTTPClient(baseURL string, sess *session.Session, timeout time.Duration) *HTTPClient {
	if sess == nil {
		sess = session.Anonymous()
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    sess,
		timeout:    timeout,
		httpClient: &http.Client{},
		now:        time.Now,
	}
}

// WithSession returns a copy of c that authenticates as sess. The copy
// shares the underlying transport.
func (c *HTTPClient) WithSession(sess *session.Session) *HTTPClient {
	cp := *c
	if sess == nil {
		sess = session.Anonymous()
	}
	cp.session = sess
	return &cp
}

// Session returns the session the client authenticates with.
func (c *HTTPClient) Session() *session.Session { return c.session }

// BaseURL returns the API root the client talks to.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// Health returns the status string reported by the API.
func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

type requestIDKey struct{}

// WithRequestID attaches a request ID to ctx so outgoing calls reuse it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request ID stored in ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// do performs an HTTP request with optional query and JSON body and returns
// the raw response body. Status codes >= 400 become *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth := c.session.Authorization(c.now()); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		reqID = idgen.RequestID()
	}
	req.Header.Set(RequestIDHeader, reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content: success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBody, &errResp) == nil {
			if errResp.Message != "" {
				return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.Message}
			}
			if errResp.Error != "" {
				return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
			}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}
	return respBody, nil
}

// doJSON performs a request and decodes a single-object response into
// result. Responses wrapped as {"data": {...}} are unwrapped. If result is
// nil, the body is discarded.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, body, result any) error {
	raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if result == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(unwrapData(raw), result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// list performs a GET against a list endpoint and normalises the result.
func list[T any](ctx context.Context, c *HTTPClient, path string, opts ListOptions) (*ListResult[T], error) {
	raw, err := c.do(ctx, http.MethodGet, path, opts.values(), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// unwrapData returns the "data" member of an envelope object, or raw itself.
func unwrapData(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return raw
	}
	var env map[string]json.RawMessage
	if json.Unmarshal(raw, &env) != nil {
		return raw
	}
	data, ok := env["data"]
	if !ok {
		return raw
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return raw
	}
	return data
}

func idPath(prefix string, id fmt.Stringer) string {
	return prefix + "/" + url.PathEscape(id.String())
}
