package ui

import (
	"context"

	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/storage"
)

// ListController drives the filter box, the grid and the editor below it.
type ListController struct {
	store  storage.BoardStore
	editor *Editor
	filter string
	rows   []domain.Board
}

var _ ChangeListener = (*ListController)(nil)

// NewListController registers itself as the editor's change listener.
func NewListController(store storage.BoardStore, editor *Editor) *ListController {
	c := &ListController{store: store, editor: editor}
	editor.SetChangeListener(c)
	return c
}

// Init fills the grid with every board and hides the editor.
func (c *ListController) Init(ctx context.Context) error {
	c.filter = ""
	c.editor.Hide()
	return c.Refresh(ctx)
}

// SetFilter shows every board for an empty filter, otherwise the boards whose
// name starts with text, ignoring case.
func (c *ListController) SetFilter(ctx context.Context, text string) error {
	c.filter = text
	return c.Refresh(ctx)
}

// Refresh re-runs the current filter.
func (c *ListController) Refresh(ctx context.Context) error {
	var (
		rows []domain.Board
		err  error
	)
	if c.filter == "" {
		rows, err = c.store.FindAll(ctx)
	} else {
		rows, err = c.store.FindByNamePrefix(ctx, c.filter)
	}
	if err != nil {
		return err
	}
	c.rows = rows
	return nil
}

// Select opens the editor on board, or hides it for nil.
func (c *ListController) Select(ctx context.Context, board *domain.Board) error {
	return c.editor.EditBoard(ctx, board)
}

func (c *ListController) AddNew(ctx context.Context) error {
	return c.editor.EditBoard(ctx, &domain.Board{})
}

// BoardsChanged hides the editor and refreshes the grid.
func (c *ListController) BoardsChanged(ctx context.Context) error {
	c.editor.Hide()
	return c.Refresh(ctx)
}

// Find looks id up in the grid as last rendered.
func (c *ListController) Find(id domain.BoardId) (domain.Board, bool) {
	for _, b := range c.rows {
		if b.Id == id {
			return b, true
		}
	}
	return domain.Board{}, false
}

func (c *ListController) Rows() []domain.Board {
	return c.rows
}

func (c *ListController) Filter() string {
	return c.filter
}

func (c *ListController) Editor() *Editor {
	return c.editor
}
