package plextv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/five82/maple/internal/logging"
)

// Header names sent on every request.
const (
	HeaderClientIdentifier = "X-Plex-Client-Identifier"
	HeaderProduct          = "X-Plex-Product"
	HeaderToken            = "X-Plex-Token"
)

const (
	defaultRequestTimeout = 15 * time.Second
	// maxResponseSize bounds body reads; API responses are far smaller.
	maxResponseSize int64 = 32 << 20
)

// DefaultHeaders builds the complete header set for a client identity. The
// token header is only present when token is non-empty.
func DefaultHeaders(clientID, product, token string) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/x-www-form-urlencoded")
	headers.Set("Accept", "application/json")
	headers.Set(HeaderClientIdentifier, clientID)
	headers.Set(HeaderProduct, product)
	if token != "" {
		headers.Set(HeaderToken, token)
	}
	return headers
}

// Transport executes requests against one base URL with a default header
// set. Headers are replaced wholesale by SetHeaders; in-flight requests keep
// the set they started with.
type Transport struct {
	baseURL *url.URL
	http    *http.Client
	headers atomic.Pointer[http.Header]
	logger  *slog.Logger
}

// TransportOptions configure NewTransport.
type TransportOptions struct {
	// HTTPClient overrides the default client (15s timeout).
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewTransport builds a Transport for baseURL.
func NewTransport(baseURL string, headers http.Header, opts TransportOptions) (*Transport, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultRequestTimeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	t := &Transport{baseURL: base, http: client, logger: logger}
	t.SetHeaders(headers)
	return t, nil
}

// SetHeaders installs a new default header set.
func (t *Transport) SetHeaders(headers http.Header) {
	snapshot := headers.Clone()
	if snapshot == nil {
		snapshot = http.Header{}
	}
	t.headers.Store(&snapshot)
}

// Headers returns a copy of the current default header set.
func (t *Transport) Headers() http.Header {
	return t.headers.Load().Clone()
}

// Get issues a GET request for path with optional query parameters and
// decodes a successful response into T.
func Get[T any](ctx context.Context, t *Transport, path string, query url.Values) (T, error) {
	var out T
	err := t.do(ctx, http.MethodGet, path, query, &out)
	return out, err
}

// Post issues a POST request for path (which may carry its own query string)
// and decodes a successful response into T.
func Post[T any](ctx context.Context, t *Transport, path string) (T, error) {
	var out T
	err := t.do(ctx, http.MethodPost, path, nil, &out)
	return out, err
}

func (t *Transport) do(ctx context.Context, method, path string, query url.Values, dest any) error {
	reqURL, err := t.resolve(path, query)
	if err != nil {
		return &RequestError{Kind: KindSend, Method: method, Path: path, Err: err}
	}
	t.logger.Log(ctx, logging.LevelTrace, method, "url", redactURL(reqURL))

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return &RequestError{Kind: KindSend, Method: method, Path: path, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header = t.headers.Load().Clone()

	resp, err := t.http.Do(req)
	if err != nil {
		return &RequestError{Kind: KindSend, Method: method, Path: path, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return &RequestError{Kind: KindSend, Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return t.decodeFailure(ctx, method, path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		t.logger.Error("could not decode response", "method", method, "path", path, "error", err, "body", redactBody(body))
		return &RequestError{Kind: KindDecode, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (t *Transport) decodeFailure(ctx context.Context, method, path string, status int, body []byte) error {
	var envelope ErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.logger.Error("could not decode error response", "method", method, "path", path, "status", status, "body", redactBody(body))
		return &RequestError{Kind: KindDecode, Method: method, Path: path, Status: status, Err: err}
	}

	reqErr := &RequestError{Kind: KindAPI, Method: method, Path: path, Status: status}
	for _, item := range envelope.Errors {
		t.logger.Error("api error", "path", path, "code", item.Code, "status", item.Status, "message", item.Message)
		resolved, ok := ResolveError(item)
		if !ok {
			t.logger.WarnContext(ctx, "could not convert plex.tv error", "code", item.Code, "key", item.Key(), "message", item.Message)
			reqErr.Unrecognized = append(reqErr.Unrecognized, item)
			continue
		}
		reqErr.Errors = append(reqErr.Errors, resolved)
	}
	return reqErr
}

func (t *Transport) resolve(path string, query url.Values) (*url.URL, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	u := t.baseURL.JoinPath(rel.Path)
	values := rel.Query()
	for key, vals := range query {
		for _, v := range vals {
			values.Add(key, v)
		}
	}
	u.RawQuery = values.Encode()
	return u, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

var secretFieldRe = regexp.MustCompile(`("(?:authToken|accessToken)"\s*:\s*)"(?:[^"\\]|\\.)*"`)

// redactBody hides token fields in a possibly malformed JSON body.
func redactBody(body []byte) string {
	return secretFieldRe.ReplaceAllString(string(body), `${1}"REDACTED"`)
}

// redactURL hides token query parameters from logs.
func redactURL(u *url.URL) string {
	values := u.Query()
	if values.Get(HeaderToken) == "" {
		return u.String()
	}
	clone := *u
	values.Set(HeaderToken, "REDACTED")
	clone.RawQuery = values.Encode()
	return clone.String()
}
