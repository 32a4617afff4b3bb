package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dshills/lenscheck/internal/history"
	"github.com/dshills/lenscheck/internal/lens"
)

// RunHandler handles saved run endpoints.
type RunHandler struct {
	store *history.Store
}

// NewRunHandler creates a new run handler. store may be nil.
func NewRunHandler(store *history.Store) *RunHandler {
	return &RunHandler{store: store}
}

// List handles GET /v1/runs?lens=&limit=
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history disabled")
		return
	}

	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	lensName := q.Get("lens")
	if lensName != "" {
		lensName = lens.Normalize(lensName)
	}

	runs, err := h.store.List(r.Context(), lensName, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// Get handles GET /v1/runs/{id}
func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history disabled")
		return
	}

	run, err := h.store.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, history.ErrNotFound) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}
