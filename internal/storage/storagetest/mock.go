package storagetest

import (
	"context"
	"sync"

	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/storage"
)

// MockBoardStore delegates to the Mock* funcs when set and otherwise to an
// embedded store. Every call is recorded.
type MockBoardStore struct {
	storage.BoardStore

	MockSave     func(ctx context.Context, board domain.Board) (domain.Board, error)
	MockFindByID func(ctx context.Context, id domain.BoardId) (domain.Board, error)
	MockDelete   func(ctx context.Context, board domain.Board) error

	mu      sync.Mutex
	Saved   []domain.Board
	Deleted []domain.Board
	Fetched []domain.BoardId
}

// NewMockBoardStore wraps next, usually a memory store.
func NewMockBoardStore(next storage.BoardStore) *MockBoardStore {
	return &MockBoardStore{BoardStore: next}
}

func (m *MockBoardStore) Save(ctx context.Context, board domain.Board) (domain.Board, error) {
	m.mu.Lock()
	m.Saved = append(m.Saved, board)
	m.mu.Unlock()
	if m.MockSave != nil {
		return m.MockSave(ctx, board)
	}
	return m.BoardStore.Save(ctx, board)
}

func (m *MockBoardStore) FindByID(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	m.mu.Lock()
	m.Fetched = append(m.Fetched, id)
	m.mu.Unlock()
	if m.MockFindByID != nil {
		return m.MockFindByID(ctx, id)
	}
	return m.BoardStore.FindByID(ctx, id)
}

func (m *MockBoardStore) Delete(ctx context.Context, board domain.Board) error {
	m.mu.Lock()
	m.Deleted = append(m.Deleted, board)
	m.mu.Unlock()
	if m.MockDelete != nil {
		return m.MockDelete(ctx, board)
	}
	return m.BoardStore.Delete(ctx, board)
}

// Reset forgets recorded calls.
func (m *MockBoardStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved, m.Deleted, m.Fetched = nil, nil, nil
}
