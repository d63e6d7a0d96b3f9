package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/expmath/vdcorput/internal/catalog"
	"github.com/expmath/vdcorput/internal/config"
	"github.com/expmath/vdcorput/internal/exponent"
	"github.com/expmath/vdcorput/internal/knowledge"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	set := knowledge.DefaultSet()
	cat, err := catalog.NewIndex(set)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { cat.Close() })
	return NewServer(set, cat, exponent.NewProver(),
		&config.ServerConfig{Host: "localhost", Port: 0}, zap.NewNop())
}

func postProve(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/prove", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	s.handleProve(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestHandleProve(t *testing.T) {
	s := newTestServer(t)

	w := postProve(t, s, `{"k": "1/6", "l": "2/3"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	resp := decode(t, w)
	if resp["status"] != "proved" {
		t.Errorf("status = %v", resp["status"])
	}
	proof, ok := resp["proof"].(map[string]any)
	if !ok {
		t.Fatal("missing proof node")
	}
	if proof["kind"] != "exponent-pair" {
		t.Errorf("proof kind = %v", proof["kind"])
	}
	if proof["statement"] != "(1/6, 2/3)" {
		t.Errorf("proof statement = %v", proof["statement"])
	}
}

func TestHandleProve_NoResult(t *testing.T) {
	s := newTestServer(t)
	w := postProve(t, s, `{"k": "1/100", "l": "1/100"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if resp := decode(t, w); resp["status"] != "no result" {
		t.Errorf("status = %v", resp["status"])
	}
}

func TestHandleProve_BadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"bad k", `{"k": "pi", "l": "1/2"}`, http.StatusBadRequest},
		{"bad l", `{"k": "1/2", "l": ""}`, http.StatusBadRequest},
		{"unknown strategy", `{"k": "1/6", "l": "2/3", "strategy": "fastest"}`, http.StatusBadRequest},
		{"strategy none", `{"k": "1/6", "l": "2/3", "strategy": "none"}`, http.StatusNotImplemented},
	}
	for _, tt := range tests {
		if w := postProve(t, s, tt.body); w.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, w.Code, tt.want)
		}
	}
}

func TestHandleProve_Strategies(t *testing.T) {
	s := newTestServer(t)

	for _, strategy := range []string{"date", "complexity"} {
		w := postProve(t, s, `{"k": "1/2", "l": "1/2", "strategy": "`+strategy+`"}`)
		if w.Code != http.StatusOK {
			t.Errorf("strategy %s: status = %d, body %s", strategy, w.Code, w.Body.String())
		}
	}
}

func TestHandleListHypotheses(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hypotheses", nil)
	w := httptest.NewRecorder()
	s.handleListHypotheses(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode(t, w)
	if int(resp["total"].(float64)) != 8 {
		t.Errorf("total = %v, want 8", resp["total"])
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/hypotheses?kind=exponent-pair-transform", nil)
	w = httptest.NewRecorder()
	s.handleListHypotheses(w, req)
	resp = decode(t, w)
	if int(resp["total"].(float64)) != 2 {
		t.Errorf("transform total = %v, want 2", resp["total"])
	}
}

func TestHandleSearchHypotheses(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hypotheses/search?q=Bourgain", nil)
	w := httptest.NewRecorder()
	s.handleSearchHypotheses(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode(t, w)
	if int(resp["total"].(float64)) == 0 {
		t.Error("no results for Bourgain")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/hypotheses/search", nil)
	w = httptest.NewRecorder()
	s.handleSearchHypotheses(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing q: status = %d", w.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	s.handleStatus(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode(t, w)
	if int(resp["hypotheses"].(float64)) != 8 {
		t.Errorf("hypotheses = %v, want 8", resp["hypotheses"])
	}
	if int(resp["exponent_pairs"].(float64)) != 6 {
		t.Errorf("exponent_pairs = %v, want 6", resp["exponent_pairs"])
	}
	if int(resp["transforms"].(float64)) != 2 {
		t.Errorf("transforms = %v, want 2", resp["transforms"])
	}
}

func TestReload(t *testing.T) {
	s := newTestServer(t)

	newSet := knowledge.DefaultSet()
	newSet.Add(knowledge.Conjecture())
	newCat, err := catalog.NewIndex(newSet)
	if err != nil {
		t.Fatal(err)
	}
	s.Reload(newSet, newCat)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	w := httptest.NewRecorder()
	s.handleStatus(w, req)
	resp := decode(t, w)
	if int(resp["hypotheses"].(float64)) != 9 {
		t.Errorf("hypotheses after reload = %v, want 9", resp["hypotheses"])
	}
}
