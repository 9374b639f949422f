package frontend

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/logger"
	"github.com/taskboards/boards/internal/ui"
)

type boardRow struct {
	Id          domain.BoardId
	Name        domain.BoardName
	Description template.HTML
	Selected    bool
}

type editorView struct {
	Id          domain.BoardId
	Name        domain.BoardName
	Description domain.BoardDescription
	IsNew       bool
	CanCancel   bool
}

type boardsPage struct {
	Filter    string
	Rows      []boardRow
	Editor    *editorView
	Flash     string
	CSRFToken string
}

// newBoardsPage snapshots the list controller into a view model.
func (h *Handler) newBoardsPage(list *ui.ListController) boardsPage {
	page := boardsPage{Filter: list.Filter()}

	editor := list.Editor()
	var selected domain.BoardId
	if editor.Visible() {
		b := editor.Board()
		selected = b.Id
		page.Editor = &editorView{
			Id:          b.Id,
			Name:        b.Name,
			Description: b.Description,
			IsNew:       editor.State() == ui.EditingNew,
			CanCancel:   editor.CanCancel(),
		}
	}

	for _, b := range list.Rows() {
		page.Rows = append(page.Rows, boardRow{
			Id:          b.Id,
			Name:        b.Name,
			Description: h.textProcessor.Render(b.Description),
			Selected:    selected != 0 && b.Id == selected,
		})
	}
	return page
}

func (h *Handler) renderTemplate(w http.ResponseWriter, name string, data any) {
	tmpl, ok := h.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Template %s not found", name), http.StatusInternalServerError)
		return
	}

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, "base", data); err != nil {
		logger.Log.Error("error executing template", "template", name, "error", err)
		http.Error(w, "Internal Server Error rendering template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
