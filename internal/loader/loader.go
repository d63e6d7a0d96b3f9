// Package loader reads knowledge files: YAML documents listing exponent
// pairs and beta bounds from the literature.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/expmath/vdcorput/internal/bounds"
	"github.com/expmath/vdcorput/internal/exponent"
	"github.com/expmath/vdcorput/internal/hypothesis"
	"github.com/expmath/vdcorput/pkg/utils"
)

// File is the YAML shape of a knowledge file.
type File struct {
	ExponentPairs []PairEntry  `yaml:"exponent_pairs"`
	BetaBounds    []BoundEntry `yaml:"beta_bounds"`
}

// PairEntry is one literature exponent pair.
type PairEntry struct {
	K      string `yaml:"k"`
	L      string `yaml:"l"`
	Author string `yaml:"author"`
	Year   int    `yaml:"year"`
}

// BoundEntry is one affine beta-bound piece. X0 and X1 must be exact
// rationals; Slope and Intercept may be decimal strings, which are fixed
// to rationals by the loader's evaluator.
type BoundEntry struct {
	X0        string `yaml:"x0"`
	X1        string `yaml:"x1"`
	Slope     string `yaml:"slope"`
	Intercept string `yaml:"intercept"`
	Author    string `yaml:"author"`
	Year      int    `yaml:"year"`
}

// Loader converts knowledge files into hypotheses at a fixed numeric
// precision.
type Loader struct {
	eval *bounds.Evaluator
}

// New returns a loader fixing bound coefficients at the evaluator's
// precision.
func New(eval *bounds.Evaluator) *Loader {
	return &Loader{eval: eval}
}

// LoadFile parses one knowledge file into hypotheses.
func (l *Loader) LoadFile(path string) ([]*hypothesis.Hypothesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var out []*hypothesis.Hypothesis
	for i, e := range f.ExponentPairs {
		h, err := l.pairHypothesis(e)
		if err != nil {
			return nil, fmt.Errorf("%s: exponent_pairs[%d]: %w", path, i, err)
		}
		out = append(out, h)
	}
	for i, e := range f.BetaBounds {
		h, err := l.boundHypothesis(e)
		if err != nil {
			return nil, fmt.Errorf("%s: beta_bounds[%d]: %w", path, i, err)
		}
		out = append(out, h)
	}
	return out, nil
}

// LoadDir loads every .yaml/.yml file in dir, in lexical filename order
// so the resulting hypothesis order is stable.
func (l *Loader) LoadDir(dir string) ([]*hypothesis.Hypothesis, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	var out []*hypothesis.Hypothesis
	for _, f := range files {
		hs, err := l.LoadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, hs...)
	}
	return out, nil
}

func (l *Loader) pairHypothesis(e PairEntry) (*hypothesis.Hypothesis, error) {
	k, err := utils.ParseRat(e.K)
	if err != nil {
		return nil, err
	}
	lv, err := utils.ParseRat(e.L)
	if err != nil {
		return nil, err
	}
	if e.Author == "" {
		return nil, fmt.Errorf("author is required")
	}
	return exponent.LiteraturePair(k, lv, reference(e.Author, e.Year)), nil
}

func (l *Loader) boundHypothesis(e BoundEntry) (*hypothesis.Hypothesis, error) {
	x0, err := utils.ParseRat(e.X0)
	if err != nil {
		return nil, err
	}
	x1, err := utils.ParseRat(e.X1)
	if err != nil {
		return nil, err
	}
	m, err := l.eval.Fix(e.Slope)
	if err != nil {
		return nil, err
	}
	c, err := l.eval.Fix(e.Intercept)
	if err != nil {
		return nil, err
	}
	b, err := bounds.New(x0, x1, m, c)
	if err != nil {
		return nil, err
	}
	if e.Author == "" {
		return nil, fmt.Errorf("author is required")
	}
	return bounds.LiteratureBound(b, reference(e.Author, e.Year)), nil
}

func reference(author string, year int) hypothesis.Reference {
	if year == 0 {
		return hypothesis.LiteratureUndated(author)
	}
	return hypothesis.Literature(author, year)
}
