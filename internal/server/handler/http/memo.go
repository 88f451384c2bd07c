// Package http provides HTTP handlers for the dated-memo variant of
// the service.
package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/teamsalmon/transponder/internal/models"
)

// MemoService defines the interface for memo operations required by
// the MemoHandler.
type MemoService interface {
	// Create validates the date and stores a new memo.
	Create(ctx context.Context, contents, date string) error
	// List returns all memos date-ascending with display dates set.
	List(ctx context.Context) ([]models.Memo, error)
	// Delete removes the memo with the given index.
	Delete(ctx context.Context, idx int) error
}

// MemoHandler handles HTTP requests for creating, listing, and
// deleting dated memos.
type MemoHandler struct {
	MemoService MemoService
}

func memoList(memos []models.Memo) map[string]any {
	if memos == nil {
		memos = []models.Memo{}
	}
	return map[string]any{"memos": memos}
}

// Disp handles GET /memo/_disp requests, returning all memos.
func (h *MemoHandler) Disp(w http.ResponseWriter, r *http.Request) {
	memos, err := h.MemoService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, memoList(memos))
}

// Create handles GET /memo/_create requests. On success it responds
// with the refreshed memo list, matching the page's redraw flow.
func (h *MemoHandler) Create(w http.ResponseWriter, r *http.Request) {
	contents := r.URL.Query().Get("contents")
	date := r.URL.Query().Get("date")

	if err := h.MemoService.Create(r.Context(), contents, date); err != nil {
		writeError(w, err)
		return
	}
	h.Disp(w, r)
}

// Del handles GET /memo/_del requests, deleting by index and
// responding with the remaining memos.
func (h *MemoHandler) Del(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, &models.ValidationError{Field: "id", Reason: "must be an integer"})
		return
	}

	if err := h.MemoService.Delete(r.Context(), idx); err != nil {
		writeError(w, err)
		return
	}
	h.Disp(w, r)
}
