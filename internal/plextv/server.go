package plextv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

var (
	// ErrNoConnection is returned when a resource has no usable connection.
	ErrNoConnection = errors.New("could not find usable connection to server")
	// ErrNoToken is returned when a resource carries no access token.
	ErrNoToken = errors.New("no access token provided for server")
)

// SelectConnection picks the connection to use for a server: the first local
// one, else the first direct (non-relay) one, else the first relay.
func SelectConnection(connections []Connection) (Connection, error) {
	for _, conn := range connections {
		if conn.Local {
			return conn, nil
		}
	}
	for _, conn := range connections {
		if !conn.Relay {
			return conn, nil
		}
	}
	for _, conn := range connections {
		if conn.Relay {
			return conn, nil
		}
	}
	return Connection{}, ErrNoConnection
}

// ServerClient talks to a single Plex Media Server over the connection chosen
// by SelectConnection.
type ServerClient struct {
	name       string
	connection Connection
	transport  *Transport
}

// ServerOptions configure NewServerClient.
type ServerOptions struct {
	ClientID   string
	Product    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewServerClient builds a client for resource using its own access token.
func NewServerClient(resource Resource, opts ServerOptions) (*ServerClient, error) {
	if resource.AccessToken == "" {
		return nil, ErrNoToken
	}
	conn, err := SelectConnection(resource.Connections)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger != nil {
		logger = logger.With("server", resource.Name)
	}
	headers := DefaultHeaders(orDefault(opts.ClientID, DefaultClientID), orDefault(opts.Product, DefaultProduct), resource.AccessToken)
	transport, err := NewTransport(conn.URI, headers, TransportOptions{HTTPClient: opts.HTTPClient, Logger: logger})
	if err != nil {
		return nil, fmt.Errorf("server %s: %w", resource.Name, err)
	}
	return &ServerClient{name: resource.Name, connection: conn, transport: transport}, nil
}

// Name returns the server's display name.
func (s *ServerClient) Name() string {
	return s.name
}

// Connection returns the connection requests are sent over.
func (s *ServerClient) Connection() Connection {
	return s.connection
}

// IsRelay reports whether traffic goes through the Plex relay.
func (s *ServerClient) IsRelay() bool {
	return s.connection.Relay
}

// MediaProviders lists the server's media providers.
func (s *ServerClient) MediaProviders(ctx context.Context) ([]MediaProvider, error) {
	root, err := Get[mediaContainerRoot](ctx, s.transport, "/media/providers", nil)
	if err != nil {
		return nil, fmt.Errorf("server %s: media providers: %w", s.name, err)
	}
	return root.MediaContainer.MediaProviders, nil
}
