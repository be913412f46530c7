// Package occurrence locates scored terms in the corpus and resolves
// overlapping occurrences so that every document carries a flat,
// non-overlapping set of labels.
package occurrence

import (
	"context"
	"log/slog"
	"sort"

	"github.com/cognicore/termex/internal/workerpool"
	"github.com/cognicore/termex/pkg/termex/corpus"
	"github.com/cognicore/termex/pkg/termex/termhood"
)

// Label is one occurrence of a term. Start and Length are byte offsets into
// the document text.
type Label struct {
	DocID  string
	Start  int
	Length int
	TermID int
}

// End returns the exclusive end offset.
func (l Label) End() int {
	return l.Start + l.Length
}

func (l Label) sameSpan(o Label) bool {
	return l.Start == o.Start && l.Length == o.Length
}

// Outcome holds the resolved labels in document order and the number of
// documents each term occurs in. Document frequency counts matches before
// overlap resolution; terms left without a resolved label are absent.
type Outcome struct {
	Labels []Label
	DF     map[int]int
}

// Resolver matches and de-overlaps occurrences document by document.
type Resolver struct {
	workers int
	logger  *slog.Logger
}

// NewResolver creates a resolver scanning documents on workers goroutines.
func NewResolver(workers int, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{workers: workers, logger: logger}
}

// Resolve labels every document of c with the terms in records.
func (r *Resolver) Resolve(ctx context.Context, c *corpus.Corpus, records []termhood.Record) (Outcome, error) {
	m := NewMatcher(records)
	docs := make([]*corpus.Document, len(c.Documents))
	for i := range c.Documents {
		docs[i] = &c.Documents[i]
	}

	type docResult struct {
		terms  map[int]bool
		labels []Label
	}
	perDoc, err := workerpool.Map(ctx, docs, r.workers, func(_ int, d *corpus.Document) docResult {
		matched := m.Match(d)
		terms := make(map[int]bool)
		for _, l := range matched {
			terms[l.TermID] = true
		}
		return docResult{terms: terms, labels: RemoveOverlaps(matched)}
	})
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{DF: make(map[int]int)}
	labelled := make(map[int]bool)
	for _, res := range perDoc {
		for id := range res.terms {
			out.DF[id]++
		}
		for _, l := range res.labels {
			labelled[l.TermID] = true
		}
		out.Labels = append(out.Labels, res.labels...)
	}
	for id := range out.DF {
		if !labelled[id] {
			delete(out.DF, id)
		}
	}
	r.logger.Debug("occurrences resolved", "variants", m.Len(), "documents", len(docs), "labels", len(out.Labels), "terms", len(out.DF))
	return out, nil
}

// RemoveOverlaps resolves the labels of a single document. Labels strictly
// contained in another label are dropped first; the remainder is swept in
// start order, longer spans first, and a label overlapping an already kept
// label is dropped unless both cover exactly the same span. The result is
// sorted by start offset.
func RemoveOverlaps(labels []Label) []Label {
	sorted := make([]Label, len(labels))
	copy(sorted, labels)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		if sorted[i].Length != sorted[j].Length {
			return sorted[i].Length > sorted[j].Length
		}
		return sorted[i].TermID < sorted[j].TermID
	})

	// Identical spans are adjacent; maxEnd covers only earlier, different
	// spans, all of which start at or before the current one.
	outer := sorted[:0:0]
	maxEnd := -1
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].sameSpan(sorted[i]) {
			j++
		}
		if maxEnd < sorted[i].End() {
			outer = append(outer, sorted[i:j]...)
			maxEnd = sorted[i].End()
		}
		i = j
	}

	var kept []Label
	for _, l := range outer {
		if len(kept) > 0 {
			last := kept[len(kept)-1]
			if !l.sameSpan(last) && l.Start < last.End() {
				continue
			}
		}
		kept = append(kept, l)
	}
	return kept
}
