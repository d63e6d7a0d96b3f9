// Package catalog provides a Bleve full-text index over hypotheses,
// backing the HTTP API's keyword search.
package catalog

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"

	"github.com/expmath/vdcorput/internal/hypothesis"
)

// Index is an in-memory full-text index over hypothesis names, kinds and
// proof narratives. The knowledge base is small and rebuilt wholesale on
// reload, so nothing is persisted to disk.
type Index struct {
	index bleve.Index
	byID  map[string]*hypothesis.Hypothesis
}

// entry is the indexed shape of a hypothesis.
type entry struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Proof  string `json:"proof"`
	Author string `json:"author"`
}

// Result is one search hit.
type Result struct {
	Hypothesis *hypothesis.Hypothesis
	Score      float64
}

// NewIndex builds an in-memory index over every hypothesis in the set.
func NewIndex(set *hypothesis.Set) (*Index, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so queries
	// like "Corput" match the exact word.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("name", textFieldMapping)
	docMapping.AddFieldMappingsAt("proof", textFieldMapping)
	docMapping.AddFieldMappingsAt("author", textFieldMapping)
	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("kind", keywordFieldMapping)
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog index: %w", err)
	}

	c := &Index{index: index, byID: make(map[string]*hypothesis.Hypothesis)}
	batch := index.NewBatch()
	for _, h := range set.All() {
		c.byID[h.ID] = h
		if err := batch.Index(h.ID, entry{
			Name:   h.Name,
			Kind:   string(h.Kind),
			Proof:  h.Proof,
			Author: h.Ref.Author(),
		}); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index hypothesis %s: %w", h.Name, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		_ = index.Close()
		return nil, fmt.Errorf("failed to build catalog index: %w", err)
	}
	return c, nil
}

// Search runs a match query and returns up to limit hits by descending
// score.
func (c *Index) Search(query string, limit int) ([]*Result, error) {
	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := c.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("catalog search failed: %w", err)
	}
	out := make([]*Result, 0, len(results.Hits))
	for _, hit := range results.Hits {
		h, ok := c.byID[hit.ID]
		if !ok {
			continue
		}
		out = append(out, &Result{Hypothesis: h, Score: hit.Score})
	}
	return out, nil
}

// DocCount returns the number of indexed hypotheses.
func (c *Index) DocCount() (uint64, error) {
	return c.index.DocCount()
}

// Close releases the index.
func (c *Index) Close() error {
	return c.index.Close()
}
