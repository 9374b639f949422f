// Package ui holds the state behind the server-rendered board screen: a
// list controller owning a grid and a single board editor.
package ui

import (
	"context"
	"errors"

	"github.com/taskboards/boards/internal/domain"
	internal_errors "github.com/taskboards/boards/internal/errors"
	"github.com/taskboards/boards/internal/logger"
	"github.com/taskboards/boards/internal/storage"
)

type EditorState int

const (
	Hidden EditorState = iota
	EditingNew
	EditingExisting
)

func (s EditorState) String() string {
	switch s {
	case EditingNew:
		return "editing_new"
	case EditingExisting:
		return "editing_existing"
	default:
		return "hidden"
	}
}

var (
	ErrNotEditing   = errors.New("editor is hidden")
	ErrCannotCancel = errors.New("only an existing board can be cancelled")
)

// ChangeListener is told after every save or delete that list data may be stale.
type ChangeListener interface {
	BoardsChanged(ctx context.Context) error
}

// Editor is the form state machine for creating, editing and deleting one board.
type Editor struct {
	store    storage.BoardStore
	listener ChangeListener
	state    EditorState
	board    domain.Board
}

func NewEditor(store storage.BoardStore) *Editor {
	return &Editor{store: store}
}

func (e *Editor) SetChangeListener(l ChangeListener) {
	e.listener = l
}

func (e *Editor) State() EditorState {
	return e.state
}

func (e *Editor) Visible() bool {
	return e.state != Hidden
}

// CanCancel reports whether the cancel affordance is shown.
func (e *Editor) CanCancel() bool {
	return e.state == EditingExisting
}

// Board returns the board bound to the form, zero value when hidden.
func (e *Editor) Board() domain.Board {
	return e.board
}

func (e *Editor) Hide() {
	e.state = Hidden
	e.board = domain.Board{}
}

// EditBoard opens the editor on board. A persisted board is re-read from the
// store so unsaved changes held by the caller are dropped; nil hides the editor.
func (e *Editor) EditBoard(ctx context.Context, board *domain.Board) error {
	if board == nil {
		e.Hide()
		return nil
	}
	if !board.Persisted() {
		e.board = *board
		e.state = EditingNew
		return nil
	}

	stored, err := e.store.FindByID(ctx, board.Id)
	if err != nil {
		e.Hide()
		if errors.Is(err, storage.ErrNotFound) {
			return internal_errors.ErrNotFound
		}
		return err
	}
	e.board = stored
	e.state = EditingExisting
	return nil
}

func (e *Editor) SetFields(name domain.BoardName, description domain.BoardDescription) error {
	if !e.Visible() {
		return ErrNotEditing
	}
	e.board.Name = name
	e.board.Description = description
	return nil
}

// Save stores the form's board, creating it when it has no id. The editor
// stays open; hiding it is up to the listener.
func (e *Editor) Save(ctx context.Context) error {
	if !e.Visible() {
		return ErrNotEditing
	}
	if !e.board.HasName() {
		return internal_errors.ErrValidationFailed
	}

	saved, err := e.store.Save(ctx, e.board)
	if err != nil {
		return err
	}
	logger.Log.Debug("board saved from editor", "board_id", saved.Id)
	e.board = saved
	e.state = EditingExisting
	return e.notify(ctx)
}

func (e *Editor) Delete(ctx context.Context) error {
	if !e.Visible() {
		return ErrNotEditing
	}
	if err := e.store.Delete(ctx, e.board); err != nil {
		return err
	}
	logger.Log.Debug("board deleted from editor", "board_id", e.board.Id)
	return e.notify(ctx)
}

// Cancel reloads the edited board from the store, resetting the form.
func (e *Editor) Cancel(ctx context.Context) error {
	if e.state != EditingExisting {
		return ErrCannotCancel
	}
	board := e.board
	return e.EditBoard(ctx, &board)
}

func (e *Editor) notify(ctx context.Context) error {
	if e.listener == nil {
		return nil
	}
	return e.listener.BoardsChanged(ctx)
}
