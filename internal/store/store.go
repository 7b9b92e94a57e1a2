// Package store provides the persistence port for gantry: named JSON
// documents behind a small interface. It supports two backends, files
// (default) and sqlite, selected by configuration.
package store

import (
	"context"
	"errors"
)

// ErrNotExist is returned by ReadJSON when the named document has never
// been written.
var ErrNotExist = errors.New("store: document does not exist")

// Store is the persistence port. Implementations must be safe for
// concurrent use. Documents are read and written whole; there are no
// partial-patch semantics.
type Store interface {
	// Exists reports whether the named document has been written.
	Exists(ctx context.Context, name string) (bool, error)

	// ReadJSON decodes the named document into v. Returns ErrNotExist
	// (possibly wrapped) when the document is absent.
	ReadJSON(ctx context.Context, name string, v any) error

	// WriteJSON encodes v and replaces the named document.
	WriteJSON(ctx context.Context, name string, v any) error

	// Close releases backend resources.
	Close() error
}
