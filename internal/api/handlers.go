package api

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"attrsort/pkg/buildinfo"
	"attrsort/pkg/errors"
	"attrsort/pkg/order"
	"attrsort/pkg/token"
)

// healthResponse is the body of GET /healthz.
type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   buildinfo.Version,
	})
}

// sortRequest is the body of POST /v1/sort.
type sortRequest struct {
	Names         []string   `json:"names"`
	Hints         [][]string `json:"hints,omitempty"`
	Mode          string     `json:"mode,omitempty"`
	SkipCanonical bool       `json:"skip_canonical,omitempty"`
	MaxIter       int        `json:"max_iter,omitempty"`
}

// sortResponse is the body of a successful sort. Strengths uses null for
// tokens the estimator left undefined (NaN is not representable in JSON).
type sortResponse struct {
	Tokens    []token.Token       `json:"tokens"`
	Names     []string            `json:"names"`
	Mode      string              `json:"mode"`
	Strengths map[string]*float64 `json:"strengths,omitempty"`
	Stats     order.Stats         `json:"stats"`
}

func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body"))
		return
	}
	if len(req.Names) == 0 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "names is required"))
		return
	}

	result, err := s.runner.Sort(r.Context(), order.Options{
		Names:         req.Names,
		Hints:         req.Hints,
		Mode:          req.Mode,
		SkipCanonical: req.SkipCanonical,
		MaxIter:       req.MaxIter,
		Logger:        s.logger,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, sortResponse{
		Tokens:    result.Tokens,
		Names:     result.Names,
		Mode:      result.Mode,
		Strengths: jsonStrengths(result.Strengths),
		Stats:     result.Stats,
	})
}

// rankRequest is the body of POST /v1/rank.
type rankRequest struct {
	Names []string `json:"names"`
}

type rankResponse struct {
	Tokens []token.Token `json:"tokens"`
}

// handleRank runs the hint-free tournament ranking: every pairwise outcome
// becomes a weighted edge and the graph is linearized cycles and all.
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body"))
		return
	}
	if len(req.Names) == 0 {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "names is required"))
		return
	}

	tokens, err := order.Tournament(r.Context(), s.runner.Comparator, req.Names)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, rankResponse{Tokens: tokens})
}

// jsonStrengths converts estimator strengths to a JSON-safe map, replacing
// NaN with null.
func jsonStrengths(strengths map[token.Token]float64) map[string]*float64 {
	if strengths == nil {
		return nil
	}
	out := make(map[string]*float64, len(strengths))
	for t, v := range strengths {
		if math.IsNaN(v) {
			out[t.String()] = nil
			continue
		}
		v := v
		out[t.String()] = &v
	}
	return out
}
