package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/go-chi/chi/v5"
)

const (
	maxJSONBody = 1 << 20
	maxCSVBody  = 10 << 20
)

// solveRequest overlays the configured plate defaults; fields missing from
// the body keep their default.
type solveRequest struct {
	plates.LoadRequest
	Strategy string `json:"strategy"`
}

func (s *Server) handleSolvePlates(w http.ResponseWriter, r *http.Request) {
	req := solveRequest{LoadRequest: s.plates, Strategy: string(s.strategy)}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	strategy, err := plates.ParseStrategy(req.Strategy)
	if err != nil {
		writeError(w, err)
		return
	}

	loadout, err := plates.Plan(req.LoadRequest, strategy)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loadout)
}

func (s *Server) handlePlateCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, plates.Catalog)
}

type estimateResponse struct {
	Request    rpe.Request `json:"request"`
	E1RM       float64     `json:"e1rm"`
	Percentage float64     `json:"percentage"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	req := s.e1rm
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	pct, err := rpe.Percentage(req.Reps, req.RPE, req.Bias)
	if err != nil {
		writeError(w, err)
		return
	}
	e1rm, err := rpe.Estimate(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, estimateResponse{Request: req, E1RM: e1rm, Percentage: pct})
}

// RPETableResponse is the body of GET /api/v1/rpe/{bias}. Rows[i][j] is the
// percentage of 1RM for RPE[i] and j+1 reps.
type RPETableResponse struct {
	Bias rpe.Bias  `json:"bias"`
	RPE  []float64 `json:"rpe"`
	Rows rpe.Table `json:"rows"`
}

func (s *Server) handleRPETable(w http.ResponseWriter, r *http.Request) {
	b, err := rpe.ParseBias(chi.URLParam(r, "bias"))
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := rpe.TableFor(b)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RPETableResponse{Bias: b, RPE: rpe.RPEs(), Rows: t})
}

func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	provider := s.alpha
	if q := r.URL.Query().Get("bias"); q != "" {
		b, err := rpe.ParseBias(q)
		if err != nil {
			writeError(w, err)
			return
		}
		provider = alpha.NewProvider(b, s.log)
	}

	result, err := provider.Ingest(r.Context(), http.MaxBytesReader(w, r.Body, maxCSVBody))
	if err != nil {
		s.log.Error("alpha import error", "error", err, "request_id", requestIDFromContext(r))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error(), "kind": "bad_request"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
