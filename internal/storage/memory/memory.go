// Package memory is an in-process BoardStore, used for tests and the
// "memory" storage driver.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/storage"
)

type Storage struct {
	mu     sync.RWMutex
	boards map[domain.BoardId]domain.Board
	lastId domain.BoardId
}

var _ storage.BoardStore = (*Storage)(nil)

func New() *Storage {
	return &Storage{boards: make(map[domain.BoardId]domain.Board)}
}

func (s *Storage) Save(ctx context.Context, board domain.Board) (domain.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !board.Persisted() {
		s.lastId++
		board.Id = s.lastId
	} else if board.Id > s.lastId {
		s.lastId = board.Id
	}
	s.boards[board.Id] = board
	return board, nil
}

func (s *Storage) FindByID(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.boards[id]
	if !ok {
		return domain.Board{}, storage.ErrNotFound
	}
	return board, nil
}

func (s *Storage) FindAll(ctx context.Context) ([]domain.Board, error) {
	return s.filter(func(domain.Board) bool { return true }), nil
}

func (s *Storage) FindByNamePrefix(ctx context.Context, prefix string) ([]domain.Board, error) {
	return s.filter(func(b domain.Board) bool { return domain.NameHasPrefix(b.Name, prefix) }), nil
}

func (s *Storage) filter(keep func(domain.Board) bool) []domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	boards := make([]domain.Board, 0, len(s.boards))
	for _, b := range s.boards {
		if keep(b) {
			boards = append(boards, b)
		}
	}
	sort.Slice(boards, func(i, j int) bool { return boards[i].Id < boards[j].Id })
	return boards
}

func (s *Storage) Delete(ctx context.Context, board domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.boards, board.Id)
	return nil
}

func (s *Storage) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boards = make(map[domain.BoardId]domain.Board)
	s.lastId = 0
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}
