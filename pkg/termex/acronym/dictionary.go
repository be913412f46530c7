// Package acronym discovers acronym definitions in a corpus and folds
// acronym mentions into the keys of their long forms.
package acronym

import (
	"context"
	"sort"
	"strings"

	"github.com/cognicore/termex/pkg/termex/candidate"
	"github.com/cognicore/termex/pkg/termex/corpus"
)

// Acronym is a resolved short form bound to the key of its long form.
type Acronym struct {
	Short string
	Long  string // lowercase token sequence
	Key   string
}

// Resolver discovers acronyms in a corpus given its term candidates.
type Resolver interface {
	Resolve(ctx context.Context, c *corpus.Corpus, set *candidate.Set) (*Dictionary, error)
}

// Analyzer re-tokenizes and lemmatizes free text the same way the corpus was
// annotated, so long forms compare equal to candidate phrases.
type Analyzer interface {
	Tokenize(text string) []string
	Lemmatize(text string) []string
}

// FieldsAnalyzer splits on whitespace and uses lowercased words as lemmas.
type FieldsAnalyzer struct{}

// Tokenize splits text on whitespace.
func (FieldsAnalyzer) Tokenize(text string) []string {
	return strings.Fields(text)
}

// Lemmatize lowercases each whitespace-separated word.
func (FieldsAnalyzer) Lemmatize(text string) []string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return words
}

// Dictionary holds at most one long form per short form. Ambiguous short
// forms are recorded separately and never resolved.
type Dictionary struct {
	entries   map[string]Acronym
	ambiguous map[string]bool
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		entries:   make(map[string]Acronym),
		ambiguous: make(map[string]bool),
	}
}

// Put stores an entry unless its short form is ambiguous.
func (d *Dictionary) Put(a Acronym) {
	if d.ambiguous[a.Short] {
		return
	}
	d.entries[a.Short] = a
}

// MarkAmbiguous removes short from the dictionary for the rest of the run.
func (d *Dictionary) MarkAmbiguous(short string) {
	delete(d.entries, short)
	d.ambiguous[short] = true
}

// Get returns the entry for a short form.
func (d *Dictionary) Get(short string) (Acronym, bool) {
	a, ok := d.entries[short]
	return a, ok
}

// SetKey rebinds a short form to a new key.
func (d *Dictionary) SetKey(short, key string) {
	if a, ok := d.entries[short]; ok {
		a.Key = key
		d.entries[short] = a
	}
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// All returns the entries sorted by short form.
func (d *Dictionary) All() []Acronym {
	out := make([]Acronym, 0, len(d.entries))
	for _, a := range d.entries {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Short < out[j].Short })
	return out
}

// Ambiguous returns the ambiguous short forms, sorted.
func (d *Dictionary) Ambiguous() []string {
	out := make([]string, 0, len(d.ambiguous))
	for s := range d.ambiguous {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// bindKey finds the key of the candidates whose lowercased phrase equals
// long. When several keys qualify the most frequent wins, then the smallest.
func bindKey(set *candidate.Set, long string) (string, bool) {
	long = strings.ToLower(long)
	counts := make(map[string]int)
	for _, c := range set.All() {
		if c.Lower() == long {
			counts[c.Key]++
		}
	}
	best, bestN := "", 0
	for k, n := range counts {
		if n > bestN || (n == bestN && k < best) {
			best, bestN = k, n
		}
	}
	return best, bestN > 0
}
