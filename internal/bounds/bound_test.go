package bounds

import (
	"math/big"
	"testing"

	"github.com/expmath/vdcorput/internal/hypothesis"
)

func rat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("bad rational: " + s)
	}
	return r
}

func TestNew(t *testing.T) {
	b, err := New(rat("0"), rat("1/2"), rat("1/3"), rat("1/6"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.X0.Cmp(rat("0")) != 0 || b.X1.Cmp(rat("1/2")) != 0 {
		t.Errorf("domain = [%s, %s]", b.X0.RatString(), b.X1.RatString())
	}

	if _, err := New(rat("1/2"), rat("1/2"), rat("0"), rat("0")); err == nil {
		t.Error("New should reject an empty domain")
	}
	if _, err := New(rat("1"), rat("1/2"), rat("0"), rat("0")); err == nil {
		t.Error("New should reject a reversed domain")
	}
}

func TestBound_At(t *testing.T) {
	// beta(x) <= x/3 + 1/6 on [0, 1/2]
	b, err := New(rat("0"), rat("1/2"), rat("1/3"), rat("1/6"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		x       string
		extend  bool
		want    string
		wantErr bool
	}{
		{name: "interior", x: "1/4", want: "1/4"},
		{name: "left endpoint", x: "0", want: "1/6"},
		{name: "right endpoint", x: "1/2", want: "1/3"},
		{name: "outside without extend", x: "3/4", wantErr: true},
		{name: "outside with extend", x: "3/4", extend: true, want: "5/12"},
		{name: "negative with extend", x: "-1/2", extend: true, want: "0"},
	}
	for _, tt := range tests {
		got, err := b.At(rat(tt.x), tt.extend)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%s: At(%s) should fail", tt.name, tt.x)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: At(%s): %v", tt.name, tt.x, err)
			continue
		}
		if got.Cmp(rat(tt.want)) != 0 {
			t.Errorf("%s: At(%s) = %s, want %s", tt.name, tt.x, got.RatString(), tt.want)
		}
	}
}

func TestBound_Key(t *testing.T) {
	b1, _ := New(rat("0"), rat("1/2"), rat("1/3"), rat("1/6"))
	b2, _ := New(rat("0/7"), rat("2/4"), rat("2/6"), rat("1/6"))
	if b1.Key() != b2.Key() {
		t.Errorf("equal bounds have different keys: %q vs %q", b1.Key(), b2.Key())
	}
	b3, _ := New(rat("0"), rat("1/2"), rat("1/3"), rat("1/7"))
	if b1.Key() == b3.Key() {
		t.Error("different bounds share a key")
	}
}

func TestBestPieces(t *testing.T) {
	mk := func(x0, x1 string) *hypothesis.Hypothesis {
		b, err := New(rat(x0), rat(x1), rat("0"), rat("1/2"))
		if err != nil {
			t.Fatal(err)
		}
		return LiteratureBound(b, hypothesis.Literature("Test", 2000))
	}

	set := hypothesis.NewSet(
		mk("1/4", "1/2"),
		mk("0", "1/8"),
		mk("1/8", "1/4"),
	)

	pieces := BestPieces(set)
	if len(pieces) != 3 {
		t.Fatalf("got %d pieces, want 3", len(pieces))
	}
	wantStarts := []string{"0", "1/8", "1/4"}
	for i, h := range pieces {
		b := h.Payload.(*Bound)
		if b.X0.Cmp(rat(wantStarts[i])) != 0 {
			t.Errorf("pieces[%d].X0 = %s, want %s", i, b.X0.RatString(), wantStarts[i])
		}
	}
}

func TestEvaluator_Fix(t *testing.T) {
	e := NewEvaluator(0)
	if e.Precision() != DefaultPrecisionBits {
		t.Errorf("Precision = %d, want %d", e.Precision(), DefaultPrecisionBits)
	}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "13/84", want: "13/84"},
		{in: "0.25", want: "1/4"},
		{in: "-3", want: "-3"},
		{in: "not a number", wantErr: true},
	}
	for _, tt := range tests {
		got, err := e.Fix(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Fix(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Fix(%q): %v", tt.in, err)
			continue
		}
		if got.Cmp(rat(tt.want)) != 0 {
			t.Errorf("Fix(%q) = %s, want %s", tt.in, got.RatString(), tt.want)
		}
	}

	// The same non-terminating input fixes to the same rational every time.
	a, err := e.Fix("1.4142135623730951e0")
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Fix("1.4142135623730951e0")
	if err != nil {
		t.Fatal(err)
	}
	if a.Cmp(b) != 0 {
		t.Error("repeated Fix of the same input disagrees")
	}
}
