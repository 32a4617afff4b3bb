package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dshills/lenscheck/internal/assess"
	"github.com/dshills/lenscheck/internal/history"
	"github.com/dshills/lenscheck/internal/lens"
	"github.com/dshills/lenscheck/internal/render"
	"github.com/dshills/lenscheck/internal/schema"
)

// LensHandler handles lens and scoring endpoints.
type LensHandler struct {
	store       *history.Store
	version     string
	defaultRank assess.RankMode
}

// NewLensHandler creates a new lens handler. store may be nil.
func NewLensHandler(store *history.Store, version string, defaultRank assess.RankMode) *LensHandler {
	if !defaultRank.Valid() {
		defaultRank = assess.RankFavorability
	}
	return &LensHandler{store: store, version: version, defaultRank: defaultRank}
}

// LensSummary is one entry of the lens listing.
type LensSummary struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Questions   int    `json:"questions"`
}

// LensDetail is a full lens with its scale.
type LensDetail struct {
	*lens.Lens
	Scale map[int]string `json:"scale"`
}

// ScoreRequest is the body of POST /v1/lenses/{lens}/score.
type ScoreRequest struct {
	Answers map[string]int `json:"answers"`
	Rank    string         `json:"rank,omitempty"`
}

// ScoreResponse wraps a report with its saved run ID, if any.
type ScoreResponse struct {
	*render.Report
	RunID string `json:"run_id,omitempty"`
}

// List handles GET /v1/lenses
func (h *LensHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := lens.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]LensSummary, 0, len(names))
	for _, name := range names {
		l, err := lens.LoadBuiltin(name)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, LensSummary{Name: l.Name, Title: l.Title, Description: l.Description, Questions: len(l.Bank)})
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /v1/lenses/{lens}
func (h *LensHandler) Get(w http.ResponseWriter, r *http.Request) {
	l, ok := h.loadLens(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, LensDetail{Lens: l, Scale: lens.ScaleLabels})
}

// Score handles POST /v1/lenses/{lens}/score
func (h *LensHandler) Score(w http.ResponseWriter, r *http.Request) {
	l, ok := h.loadLens(w, r)
	if !ok {
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode := h.defaultRank
	if req.Rank != "" {
		m, ok := assess.ParseRankMode(req.Rank)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown rank mode %q", req.Rank))
			return
		}
		mode = m
	}

	answers := assess.Answers(req.Answers)
	if answers == nil {
		answers = assess.Answers{}
	}
	rep, err := render.Build(l, answers, mode, render.Input{}, h.version)
	if errors.Is(err, assess.ErrAnswerOutOfRange) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   assess.ErrAnswerOutOfRange.Error(),
			"details": schema.ValidateAnswers(l.Bank, answers),
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := ScoreResponse{Report: rep}
	if h.store != nil && len(rep.Result.PerVariable) > 0 {
		run := history.NewRun(rep, answers, "api")
		if err := h.store.Save(r.Context(), run); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.RunID = run.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LensHandler) loadLens(w http.ResponseWriter, r *http.Request) (*lens.Lens, bool) {
	name := mux.Vars(r)["lens"]
	l, err := lens.LoadBuiltin(name)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("lens %q not found", name))
		return nil, false
	}
	return l, true
}
