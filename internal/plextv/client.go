package plextv

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/five82/maple/internal/logging"
)

// Default endpoints and identity.
const (
	PlexTVURL       = "https://plex.tv"
	AppPlexTVURL    = "https://app.plex.tv"
	DefaultClientID = "Maple_1_0"
	DefaultProduct  = "Maple for Plex"
)

// AccountAPI is the account-level surface used by the app layer. It is
// implemented by *Client and can be replaced in tests.
type AccountAPI interface {
	HasToken() bool
	SetToken(token string)
	CreatePin(ctx context.Context, strong bool) (*Pin, error)
	LinkURL(pin *Pin) string
	PollPin(ctx context.Context, pin *Pin) (*PinStatus, error)
	ListResources(ctx context.Context, includeHTTPS, includeRelay, includeIPv6 bool) ([]Resource, error)
	AccountProfile(ctx context.Context) (*User, error)
}

// Ensure Client implements AccountAPI at compile time.
var _ AccountAPI = (*Client)(nil)

// Client talks to plex.tv on behalf of one account.
type Client struct {
	transport *Transport
	appURL    string
	clientID  string
	product   string
	logger    *slog.Logger

	mu    sync.Mutex
	token string
}

// Options configure NewClient. Empty fields use the package defaults.
type Options struct {
	BaseURL    string
	AppURL     string
	ClientID   string
	Product    string
	Token      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewClient builds a plex.tv client, optionally seeded with a stored token.
func NewClient(opts Options) (*Client, error) {
	c := &Client{
		appURL:   orDefault(opts.AppURL, AppPlexTVURL),
		clientID: orDefault(opts.ClientID, DefaultClientID),
		product:  orDefault(opts.Product, DefaultProduct),
		logger:   opts.Logger,
		token:    opts.Token,
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	transport, err := NewTransport(orDefault(opts.BaseURL, PlexTVURL),
		DefaultHeaders(c.clientID, c.product, c.token),
		TransportOptions{HTTPClient: opts.HTTPClient, Logger: c.logger})
	if err != nil {
		return nil, fmt.Errorf("init plex.tv transport: %w", err)
	}
	c.transport = transport
	return c, nil
}

// HasToken reports whether a token is installed.
func (c *Client) HasToken() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token != ""
}

// Token returns the installed token, empty when logged out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// SetToken replaces the token and rebuilds the default headers. An empty
// token logs the client out.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.transport.SetHeaders(DefaultHeaders(c.clientID, c.product, token))
}

// Headers returns a copy of the headers the next request will carry.
func (c *Client) Headers() http.Header {
	return c.transport.Headers()
}

// CreatePin requests a new linking pin. A strong pin is long and meant for
// browser-based completion; a weak pin is a short code a human can type at
// plex.tv/link.
func (c *Client) CreatePin(ctx context.Context, strong bool) (*Pin, error) {
	if c.HasToken() {
		c.logger.Debug("creating a new pin despite a cached token")
	}
	pin, err := Post[Pin](ctx, c.transport, "/api/v2/pins?strong="+strconv.FormatBool(strong))
	if err != nil {
		return nil, err
	}
	return &pin, nil
}

// LinkURL returns the web page where the user confirms pin.
func (c *Client) LinkURL(pin *Pin) string {
	values := url.Values{}
	values.Set("clientID", c.clientID)
	values.Set("code", pin.Code)
	return c.appURL + "/auth#?" + values.Encode()
}

// PollPin fetches the current state of pin once.
func (c *Client) PollPin(ctx context.Context, pin *Pin) (*PinStatus, error) {
	status, err := Get[PinStatus](ctx, c.transport, "/api/v2/pins/"+strconv.FormatInt(pin.ID, 10), nil)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// ListResources returns the devices and servers registered with the account.
func (c *Client) ListResources(ctx context.Context, includeHTTPS, includeRelay, includeIPv6 bool) ([]Resource, error) {
	values := url.Values{}
	values.Set("includeHttps", boolFlag(includeHTTPS))
	values.Set("includeRelay", boolFlag(includeRelay))
	values.Set("includeIPv6", boolFlag(includeIPv6))
	return Get[[]Resource](ctx, c.transport, "/api/v2/resources", values)
}

// AccountProfile returns the signed-in user's profile.
func (c *Client) AccountProfile(ctx context.Context) (*User, error) {
	user, err := Get[User](ctx, c.transport, "/api/v2/user", nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func boolFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
