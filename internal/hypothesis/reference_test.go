package hypothesis

import "testing"

func TestYear(t *testing.T) {
	y := KnownYear(1988)
	if !y.Known() || y.Value() != 1988 {
		t.Errorf("KnownYear(1988) = %v", y)
	}
	if y.String() != "1988" {
		t.Errorf("String = %q, want 1988", y.String())
	}

	u := UnknownYear()
	if u.Known() {
		t.Error("UnknownYear should not be known")
	}
	if u.String() != "unknown date" {
		t.Errorf("String = %q, want unknown date", u.String())
	}
}

func TestReferenceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		ref      Reference
		wantKind RefKind
		wantYear bool
	}{
		{"literature", Literature("Huxley", 2005), RefLiterature, true},
		{"undated literature", LiteratureUndated("Folklore"), RefLiterature, false},
		{"trivial", Trivial(), RefTrivial, false},
		{"conjectured", Conjectured(), RefConjectured, false},
		{"derived", Derived(KnownYear(2017)), RefDerived, true},
	}
	for _, tt := range tests {
		if tt.ref.Kind() != tt.wantKind {
			t.Errorf("%s: Kind = %q, want %q", tt.name, tt.ref.Kind(), tt.wantKind)
		}
		if tt.ref.Year().Known() != tt.wantYear {
			t.Errorf("%s: Year().Known() = %v, want %v", tt.name, tt.ref.Year().Known(), tt.wantYear)
		}
	}
}

func TestMaxYear(t *testing.T) {
	tests := []struct {
		name string
		refs []Reference
		want Year
	}{
		{"empty", nil, UnknownYear()},
		{"all undated", []Reference{Trivial(), LiteratureUndated("X")}, UnknownYear()},
		{
			"latest wins",
			[]Reference{Literature("A", 1922), Literature("B", 2017), Literature("C", 1988)},
			KnownYear(2017),
		},
		{
			"undated ignored",
			[]Reference{Trivial(), Literature("A", 1989)},
			KnownYear(1989),
		},
	}
	for _, tt := range tests {
		got := MaxYear(tt.refs)
		if got.Known() != tt.want.Known() || got.Value() != tt.want.Value() {
			t.Errorf("%s: MaxYear = %v, want %v", tt.name, got, tt.want)
		}
	}
}
