package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskboards/boards/internal/domain"
	internal_errors "github.com/taskboards/boards/internal/errors"
	"github.com/taskboards/boards/internal/storage"
)

// to mock service in tests
type BoardService interface {
	GetAll(ctx context.Context) ([]domain.Board, error)
	FindByNamePrefix(ctx context.Context, prefix string) ([]domain.Board, error)
	Get(ctx context.Context, id domain.BoardId) (domain.Board, error)
	Create(ctx context.Context, data domain.BoardCreationData) (domain.Board, error)
	Update(ctx context.Context, id domain.BoardId, data domain.BoardCreationData) (domain.Board, error)
	Delete(ctx context.Context, id domain.BoardId) (domain.Board, error)
}

type BoardValidator interface {
	Name(name domain.BoardName) error
}

type Board struct {
	storage   storage.BoardStore
	validator BoardValidator
}

func NewBoard(storage storage.BoardStore, validator BoardValidator) BoardService {
	return &Board{storage, validator}
}

// GetAll treats an empty store the same as a missing board.
func (b *Board) GetAll(ctx context.Context) ([]domain.Board, error) {
	boards, err := b.storage.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, internal_errors.ErrNotFound
	}
	return boards, nil
}

func (b *Board) FindByNamePrefix(ctx context.Context, prefix string) ([]domain.Board, error) {
	boards, err := b.storage.FindByNamePrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	if len(boards) == 0 {
		return nil, internal_errors.ErrNotFound
	}
	return boards, nil
}

func (b *Board) Get(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	board, err := b.storage.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Board{}, internal_errors.ErrNotFound
		}
		return domain.Board{}, err
	}
	return board, nil
}

func (b *Board) Create(ctx context.Context, data domain.BoardCreationData) (domain.Board, error) {
	if err := b.validator.Name(data.Name); err != nil {
		return domain.Board{}, err
	}
	return b.storage.Save(ctx, domain.NewBoard(data.Name, data.Description))
}

func (b *Board) Update(ctx context.Context, id domain.BoardId, data domain.BoardCreationData) (domain.Board, error) {
	if _, err := b.existing(ctx, id); err != nil {
		return domain.Board{}, err
	}
	if err := b.validator.Name(data.Name); err != nil {
		return domain.Board{}, err
	}

	board := domain.NewBoard(data.Name, data.Description)
	board.Id = id
	return b.storage.Save(ctx, board)
}

// Delete returns the board as it was before removal.
func (b *Board) Delete(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	board, err := b.existing(ctx, id)
	if err != nil {
		return domain.Board{}, err
	}
	if err := b.storage.Delete(ctx, board); err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

// existing resolves id for a mutation, a missing board is ErrTargetMissing.
func (b *Board) existing(ctx context.Context, id domain.BoardId) (domain.Board, error) {
	board, err := b.storage.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Board{}, fmt.Errorf("board %d: %w", id, internal_errors.ErrTargetMissing)
		}
		return domain.Board{}, err
	}
	return board, nil
}

type BoardNameValidator struct{}

func (v *BoardNameValidator) Name(name domain.BoardName) error {
	if !domain.NewBoard(name, "").HasName() {
		return internal_errors.ErrValidationFailed
	}
	return nil
}
