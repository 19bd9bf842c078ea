package app

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/five82/maple/internal/settings"
)

const (
	// autoClientID in the config asks for a per-install identifier.
	autoClientID = "auto"

	clientIDSection = "plextv"
	clientIDKey     = "client_id"
)

// resolveClientID returns configured unless it is "auto", in which case the
// identifier stored in settings is used, generating and saving one on first
// run.
func resolveClientID(configured string, store settings.Store, logger *slog.Logger) (string, error) {
	if configured != autoClientID {
		return configured, nil
	}
	id, ok, err := store.Get(clientIDSection, clientIDKey)
	if err != nil {
		return "", fmt.Errorf("read client id: %w", err)
	}
	if ok {
		return id, nil
	}

	id = "maple-" + uuid.NewString()
	if err := store.Set(clientIDSection, clientIDKey, id); err != nil {
		// The id is still usable for this run.
		logger.Warn("could not persist client id", "error", err)
	}
	logger.Info("generated client id", "client_id", id)
	return id, nil
}
