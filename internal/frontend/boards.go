package frontend

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskboards/boards/internal/domain"
	internal_errors "github.com/taskboards/boards/internal/errors"
	"github.com/taskboards/boards/internal/logger"
	mw "github.com/taskboards/boards/internal/middleware"
	"github.com/taskboards/boards/internal/ui"
)

func (h *Handler) BoardsGetHandler(w http.ResponseWriter, r *http.Request) {
	sess := h.viewSession(r)
	ctx, cancel := h.storeContext(r)
	defer cancel()

	var page boardsPage
	err := sess.Do(ctx, func(list *ui.ListController) error {
		err := list.Refresh(ctx)
		page = h.newBoardsPage(list)
		return err
	})
	page.Flash = sess.TakeFlash()
	if err != nil {
		page.Flash = flashMessage(err)
	}
	page.CSRFToken = mw.GetCSRFTokenFromContext(r)

	h.renderTemplate(w, "boards.html", page)
}

func (h *Handler) FilterPostHandler(w http.ResponseWriter, r *http.Request) {
	filter := r.PostFormValue("filter")
	h.act(w, r, func(ctx context.Context, list *ui.ListController) error {
		return list.SetFilter(ctx, filter)
	})
}

// SelectPostHandler opens the editor on the posted row id, an empty id clears
// the selection.
func (h *Handler) SelectPostHandler(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.PostFormValue("id"))
	h.act(w, r, func(ctx context.Context, list *ui.ListController) error {
		if raw == "" {
			return list.Select(ctx, nil)
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return internal_errors.ErrNotFound
		}
		row, ok := list.Find(id)
		if !ok {
			row = domain.Board{Id: id}
		}
		return list.Select(ctx, &row)
	})
}

func (h *Handler) NewPostHandler(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, list *ui.ListController) error {
		return list.AddNew(ctx)
	})
}

func (h *Handler) SavePostHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PostFormValue("name")
	description := r.PostFormValue("description")
	h.act(w, r, func(ctx context.Context, list *ui.ListController) error {
		editor := list.Editor()
		if err := editor.SetFields(name, description); err != nil {
			return err
		}
		return editor.Save(ctx)
	})
}

func (h *Handler) CancelPostHandler(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, list *ui.ListController) error {
		return list.Editor().Cancel(ctx)
	})
}

func (h *Handler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, list *ui.ListController) error {
		return list.Editor().Delete(ctx)
	})
}

// act runs fn against the caller's session and redirects back to the board
// screen, carrying any failure as a flash message.
func (h *Handler) act(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, list *ui.ListController) error) {
	sess := h.session(w, r)
	ctx, cancel := h.storeContext(r)
	defer cancel()

	if err := sess.Do(ctx, func(list *ui.ListController) error {
		return fn(ctx, list)
	}); err != nil {
		sess.SetFlash(flashMessage(err))
	}

	http.Redirect(w, r, uiPath, http.StatusSeeOther)
}

func flashMessage(err error) string {
	switch {
	case errors.Is(err, internal_errors.ErrValidationFailed):
		return "Name must not be blank."
	case errors.Is(err, internal_errors.ErrNotFound):
		return "That board no longer exists."
	case errors.Is(err, ui.ErrNotEditing):
		return "No board is being edited."
	case errors.Is(err, ui.ErrCannotCancel):
		return "A new board has nothing to cancel."
	default:
		logger.Log.Error("ui action failed", "error", err)
		return "Something went wrong, please try again."
	}
}
