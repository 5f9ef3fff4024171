// Package ports defines the interfaces between the engine core and its
// adapters, following the Ports & Adapters convention.
package ports

import (
	"context"

	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// SessionStore defines the interface for keeping sessions between requests.
// Implementations must copy on write and read: a caller mutating a loaded
// session must never affect the stored one.
type SessionStore interface {
	// Save persists the session for a given session ID.
	Save(ctx context.Context, sessionID string, s *domain.Session) error

	// Load retrieves the session for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all live sessions.
	List(ctx context.Context) ([]string, error)
}
