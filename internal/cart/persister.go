package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tabletap/internal/model"

	"github.com/rs/zerolog"
)

// Persister stores and retrieves cart snapshots under a fixed per-session
// key. Implementations are best-effort durable storage: Save errors are
// logged and swallowed by the store, and a Load that cannot produce a valid
// snapshot is treated as "no saved cart".
type Persister interface {
	Save(ctx context.Context, sessionID string, snap *model.CartSnapshot) error
	Load(ctx context.Context, sessionID string) (*model.CartSnapshot, error)
	Delete(ctx context.Context, sessionID string) error
}

// filePersister persists snapshots as JSON files, one per session, in a
// configured directory.
type filePersister struct {
	dir    string
	logger zerolog.Logger
}

// NewFilePersister creates a file-backed persister rooted at dir. The
// directory is created if it does not exist.
func NewFilePersister(dir string, logger zerolog.Logger) (Persister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cart storage directory: %w", err)
	}
	return &filePersister{
		dir:    dir,
		logger: logger.With().Str("component", "cart-persister").Logger(),
	}, nil
}

// Save writes the snapshot under the session's key, overwriting any previous
// value (last write wins).
func (p *filePersister) Save(ctx context.Context, sessionID string, snap *model.CartSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	if err := os.WriteFile(p.path(sessionID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart snapshot: %w", err)
	}

	p.logger.Debug().
		Str("session_id", sessionID).
		Int("item_count", len(snap.Items)).
		Msg("cart snapshot persisted")

	return nil
}

// Load reads and schema-checks the snapshot for a session. Any violation
// rejects the whole snapshot: no partially populated cart is ever returned.
// A missing or invalid snapshot yields (nil, nil) so callers can treat it as
// "no saved cart" without branching on error classes.
func (p *filePersister) Load(ctx context.Context, sessionID string) (*model.CartSnapshot, error) {
	data, err := os.ReadFile(p.path(sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart snapshot: %w", err)
	}

	var snap model.CartSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		p.logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("discarding corrupt cart snapshot")
		return nil, nil
	}

	if err := model.ValidateCartSnapshot(&snap); err != nil {
		p.logger.Warn().
			Err(err).
			Str("session_id", sessionID).
			Msg("discarding cart snapshot that failed schema validation")
		return nil, nil
	}

	return &snap, nil
}

// Delete removes the session's snapshot. Deleting a missing snapshot is a
// no-op.
func (p *filePersister) Delete(ctx context.Context, sessionID string) error {
	if err := os.Remove(p.path(sessionID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cart snapshot: %w", err)
	}
	return nil
}

func (p *filePersister) path(sessionID string) string {
	return filepath.Join(p.dir, sessionID+".json")
}
