package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/expmath/vdcorput/internal/exponent"
	"github.com/expmath/vdcorput/internal/hypothesis"
	"github.com/expmath/vdcorput/pkg/utils"
)

// proveRequest asks whether (k, l) is an exponent pair. With a strategy
// the search runs through FindBestProof; otherwise plain FindProof is
// used, optimized unless optimize is explicitly false.
type proveRequest struct {
	K        string `json:"k"`
	L        string `json:"l"`
	Strategy string `json:"strategy,omitempty"`
	Optimize *bool  `json:"optimize,omitempty"`
}

// proofNode is the JSON shape of a hypothesis and its dependency tree.
type proofNode struct {
	Name         string       `json:"name"`
	Kind         string       `json:"kind"`
	Statement    string       `json:"statement"`
	Proof        string       `json:"proof,omitempty"`
	Author       string       `json:"author"`
	Year         *int         `json:"year"`
	Complexity   int          `json:"complexity"`
	Dependencies []*proofNode `json:"dependencies,omitempty"`
}

func toProofNode(h *hypothesis.Hypothesis) *proofNode {
	n := &proofNode{
		Name:       h.Name,
		Kind:       string(h.Kind),
		Proof:      h.Proof,
		Author:     h.Ref.Author(),
		Complexity: h.Complexity(),
	}
	if h.Payload != nil {
		if s, ok := h.Payload.(interface{ String() string }); ok {
			n.Statement = s.String()
		}
	}
	if y := h.Ref.Year(); y.Known() {
		v := y.Value()
		n.Year = &v
	}
	for _, d := range h.Dependencies {
		n.Dependencies = append(n.Dependencies, toProofNode(d))
	}
	return n
}

func (s *Server) handleProve(w http.ResponseWriter, r *http.Request) {
	var req proveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	k, err := utils.ParseRat(req.K)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	l, err := utils.ParseRat(req.L)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	set, _ := s.snapshot()
	s.logger.Debug("prove request",
		zap.String("k", k.RatString()), zap.String("l", l.RatString()),
		zap.String("strategy", req.Strategy))

	var proof *hypothesis.Hypothesis
	if req.Strategy != "" {
		proof, err = s.prover.FindBestProof(k, l, set, exponent.Strategy(req.Strategy))
	} else {
		optimize := req.Optimize == nil || *req.Optimize
		proof, err = s.prover.FindProof(k, l, set, optimize)
	}
	switch {
	case errors.Is(err, exponent.ErrUnknownStrategy):
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, exponent.ErrStrategyNotSupported):
		s.respondError(w, http.StatusNotImplemented, err.Error())
		return
	case err != nil:
		s.logger.Error("proof search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if proof == nil {
		s.respondJSON(w, http.StatusNotFound, map[string]string{
			"status": "no result",
			"detail": "the target pair is outside the currently provable region",
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "proved",
		"proof":  toProofNode(proof),
	})
}

func (s *Server) handleListHypotheses(w http.ResponseWriter, r *http.Request) {
	set, _ := s.snapshot()
	kind := r.URL.Query().Get("kind")
	var hs []*hypothesis.Hypothesis
	if kind != "" {
		hs = set.ListKind(hypothesis.Kind(kind))
	} else {
		hs = set.All()
	}
	out := make([]map[string]any, 0, len(hs))
	for _, h := range hs {
		entry := map[string]any{
			"id":     h.ID,
			"name":   h.Name,
			"kind":   string(h.Kind),
			"author": h.Ref.Author(),
		}
		if y := h.Ref.Year(); y.Known() {
			entry["year"] = y.Value()
		}
		if h.Payload != nil {
			if str, ok := h.Payload.(interface{ String() string }); ok {
				entry["statement"] = str.String()
			}
		}
		out = append(out, entry)
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"hypotheses": out, "total": len(out)})
}

func (s *Server) handleSearchHypotheses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	_, cat := s.snapshot()
	results, err := cat.Search(q, limit)
	if err != nil {
		s.logger.Error("catalog search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]map[string]any, 0, len(results))
	for _, res := range results {
		h := res.Hypothesis
		entry := map[string]any{
			"id":    h.ID,
			"name":  h.Name,
			"kind":  string(h.Kind),
			"score": res.Score,
		}
		if h.Payload != nil {
			if str, ok := h.Payload.(interface{ String() string }); ok {
				entry["statement"] = str.String()
			}
		}
		out = append(out, entry)
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"results": out, "total": len(out)})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	set, cat := s.snapshot()
	resp := map[string]any{
		"hypotheses":     set.Len(),
		"exponent_pairs": len(set.ListKind(hypothesis.KindExponentPair)),
		"transforms":     len(set.ListKind(hypothesis.KindPairTransform)),
		"beta_bounds":    len(set.ListKind(hypothesis.KindBetaBound)),
	}
	if cat != nil {
		if n, err := cat.DocCount(); err == nil {
			resp["indexed"] = n
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
