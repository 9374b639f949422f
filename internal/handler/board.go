package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taskboards/boards/internal/api"
	"github.com/taskboards/boards/internal/errors"
	"github.com/taskboards/boards/internal/utils"
)

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	boards, err := h.board.GetAll(ctx)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, h.assembler(r).ToResources(boards))
}

func (h *Handler) FindBoardsByName(w http.ResponseWriter, r *http.Request) {
	prefix := pathParam(r, "prefix")

	ctx, cancel := h.storeContext(r)
	defer cancel()

	boards, err := h.board.FindByNamePrefix(ctx, prefix)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, h.assembler(r).ToResources(boards))
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBoardId(chi.URLParam(r, "id"))
	if !ok {
		utils.WriteErrorAndStatusCode(w, errors.ErrNotFound)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	board, err := h.board.Get(ctx, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, h.assembler(r).ToResource(board))
}

func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.BoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	board, err := h.board.Create(ctx, body.CreationData())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, h.assembler(r).ToResource(board))
}

func (h *Handler) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBoardId(chi.URLParam(r, "id"))
	if !ok {
		utils.WriteErrorAndStatusCode(w, errors.ErrTargetMissing)
		return
	}

	var body api.BoardRequest
	if err := utils.Decode(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	// the service checks the target before the body, a missing board wins over a blank name
	board, err := h.board.Update(ctx, id, body.CreationData())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, h.assembler(r).ToResource(board))
}

func (h *Handler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	id, ok := parseBoardId(chi.URLParam(r, "id"))
	if !ok {
		utils.WriteErrorAndStatusCode(w, errors.ErrTargetMissing)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	board, err := h.board.Delete(ctx, id)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	utils.WriteJSON(w, h.assembler(r).ToResource(board))
}
