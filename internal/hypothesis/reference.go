package hypothesis

import "fmt"

// RefKind classifies where a hypothesis comes from.
type RefKind string

const (
	RefLiterature  RefKind = "literature"
	RefTrivial     RefKind = "trivial"
	RefConjectured RefKind = "conjectured"
	RefDerived     RefKind = "derived"
)

// Year is a publication year that may be unknown. Hypotheses with an
// unknown year are always considered available, regardless of any
// date-cutoff filtering.
type Year struct {
	known bool
	value int
}

// KnownYear returns a Year with the given value.
func KnownYear(v int) Year {
	return Year{known: true, value: v}
}

// UnknownYear returns the explicit unknown-year value.
func UnknownYear() Year {
	return Year{}
}

// Known reports whether the year is known.
func (y Year) Known() bool { return y.known }

// Value returns the year; only meaningful when Known is true.
func (y Year) Value() int { return y.value }

func (y Year) String() string {
	if !y.known {
		return "unknown date"
	}
	return fmt.Sprintf("%d", y.value)
}

// Reference records authorship and publication year, or one of the
// synthetic categories (trivial, conjectured, derived).
type Reference struct {
	kind   RefKind
	author string
	year   Year
}

// Literature returns a reference to a published result.
func Literature(author string, year int) Reference {
	return Reference{kind: RefLiterature, author: author, year: KnownYear(year)}
}

// LiteratureUndated returns a reference to a published result whose year
// is not recorded.
func LiteratureUndated(author string) Reference {
	return Reference{kind: RefLiterature, author: author}
}

// Trivial returns the reference used for results requiring no citation.
func Trivial() Reference {
	return Reference{kind: RefTrivial, author: "Classical"}
}

// Conjectured returns the reference used for conjecture placeholders.
func Conjectured() Reference {
	return Reference{kind: RefConjectured, author: "Conjecture"}
}

// Derived returns the reference for a result derived from others; year is
// normally the latest year among the dependencies.
func Derived(year Year) Reference {
	return Reference{kind: RefDerived, author: "Derived", year: year}
}

// NewReference reassembles a reference from stored parts.
func NewReference(kind RefKind, author string, year Year) Reference {
	return Reference{kind: kind, author: author, year: year}
}

// Kind returns the reference category.
func (r Reference) Kind() RefKind { return r.kind }

// Author returns the author, or the category label for synthetic references.
func (r Reference) Author() string { return r.author }

// Year returns the publication year, unknown for trivial and conjectured
// references.
func (r Reference) Year() Year { return r.year }

func (r Reference) String() string {
	return fmt.Sprintf("%s (%s)", r.author, r.year)
}

// MaxYear returns the latest known year among refs, or the unknown year
// when none of them is dated.
func MaxYear(refs []Reference) Year {
	out := UnknownYear()
	for _, r := range refs {
		y := r.Year()
		if !y.Known() {
			continue
		}
		if !out.Known() || y.Value() > out.Value() {
			out = y
		}
	}
	return out
}
