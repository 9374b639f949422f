// Package storage defines the persistence capability shared by the REST
// handler and the UI. Backends live in subpackages (pg, redis, memory) and
// exactly one of them is selected by config at startup.
package storage

import (
	"context"
	"errors"

	"github.com/taskboards/boards/internal/domain"
)

// ErrNotFound is returned by FindByID when no board has the requested id.
var ErrNotFound = errors.New("board not found")

// BoardStore is implemented by every backend. Implementations must be safe
// for concurrent use and return boards in store order (ascending id).
type BoardStore interface {
	// Save creates the board when it has no id and overwrites the record at
	// its id otherwise. The stored board, with its id, is returned.
	Save(ctx context.Context, board domain.Board) (domain.Board, error)
	FindByID(ctx context.Context, id domain.BoardId) (domain.Board, error)
	FindAll(ctx context.Context) ([]domain.Board, error)
	// FindByNamePrefix matches names starting with prefix, ignoring case.
	FindByNamePrefix(ctx context.Context, prefix string) ([]domain.Board, error)
	// Delete removes the board with board.Id. Unpersisted or already
	// missing boards are a no-op.
	Delete(ctx context.Context, board domain.Board) error
	DeleteAll(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
