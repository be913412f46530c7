// Package termhood scores normalized terms by C-value and IDF.
package termhood

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/cognicore/termex/pkg/termex/candidate"
	"github.com/cognicore/termex/pkg/termex/nested"
	"github.com/cognicore/termex/pkg/termex/normalize"
)

// Variant is a distinct lowercase surface form of a term.
type Variant struct {
	Text      string
	Frequency int
}

// Record is a scored term.
type Record struct {
	ID         int
	Expanded   string
	Length     int // tokens in the expanded form
	Standalone int
	Nested     int // standalone frequency summed over supersets
	Supersets  int
	F          int
	CValue     float64
	DF         int
	IDF        float64
	Variants   []Variant
}

// Score is the ranking score, C-value weighted by IDF.
func (r Record) Score() float64 {
	return r.CValue * r.IDF
}

// CValue computes ln(length) * (f - nested/supersets), omitting the nesting
// correction for terms that have no supersets.
func CValue(length, f, supersets, nestedFreq int) float64 {
	adj := float64(f)
	if supersets > 0 {
		adj -= float64(nestedFreq) / float64(supersets)
	}
	return math.Log(float64(length)) * adj
}

// IDF returns log10(n/df), or 0 when df is not positive.
func IDF(n, df int) float64 {
	if df <= 0 || n <= 0 {
		return 0
	}
	return math.Log10(float64(n) / float64(df))
}

// Scorer filters and scores terms.
type Scorer struct {
	fmin   int
	cmin   float64
	logger *slog.Logger
}

// NewScorer creates a scorer keeping terms with f > fmin and c > cmin.
func NewScorer(fmin int, cmin float64, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{fmin: fmin, cmin: cmin, logger: logger}
}

// Score computes frequencies and C-values for every distinct expanded form
// among terms and returns the surviving records in expanded-form order with
// IDs assigned from 1.
func (s *Scorer) Score(set *candidate.Set, terms []normalize.Term, g *nested.Graph) []Record {
	freq := set.KeyFrequency()
	variants := set.Variants()

	standalone := make(map[string]int)
	forms := make(map[string]map[string]int)
	for _, t := range terms {
		standalone[t.Expanded] += freq[t.Key]
		m, ok := forms[t.Expanded]
		if !ok {
			m = make(map[string]int)
			forms[t.Expanded] = m
		}
		for text, n := range variants[t.Key] {
			m[text] += n
		}
	}

	expanded := make([]string, 0, len(standalone))
	for e := range standalone {
		expanded = append(expanded, e)
	}
	sort.Strings(expanded)

	var out []Record
	dropped := 0
	for _, e := range expanded {
		parents := g.Parents(e)
		nf := 0
		for _, p := range parents {
			nf += standalone[p]
		}
		r := Record{
			Expanded:   e,
			Length:     len(strings.Fields(e)),
			Standalone: standalone[e],
			Nested:     nf,
			Supersets:  len(parents),
			F:          standalone[e] + nf,
			Variants:   sortVariants(forms[e]),
		}
		r.CValue = CValue(r.Length, r.F, r.Supersets, r.Nested)
		if !s.keep(r) {
			dropped++
			continue
		}
		r.ID = len(out) + 1
		out = append(out, r)
	}
	s.logger.Debug("termhood", "scored", len(expanded), "kept", len(out), "dropped", dropped)
	return out
}

func (s *Scorer) keep(r Record) bool {
	if r.F <= s.fmin || r.CValue <= s.cmin {
		return false
	}
	if len(r.Variants) == 1 && r.Variants[0].Frequency <= s.fmin {
		return false
	}
	return true
}

// ApplyDocumentFrequency sets DF and IDF from per-term document counts over
// n documents and drops records that occur in no document.
func ApplyDocumentFrequency(records []Record, df map[int]int, n int) []Record {
	out := records[:0:0]
	for _, r := range records {
		d := df[r.ID]
		if d == 0 {
			continue
		}
		r.DF = d
		r.IDF = IDF(n, d)
		out = append(out, r)
	}
	return out
}

// Rank orders records by score, then C-value, both descending, then ID.
func Rank(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Score(), out[j].Score()
		if si != sj {
			return si > sj
		}
		if out[i].CValue != out[j].CValue {
			return out[i].CValue > out[j].CValue
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// sortVariants orders by frequency descending, then text.
func sortVariants(m map[string]int) []Variant {
	out := make([]Variant, 0, len(m))
	for text, n := range m {
		out = append(out, Variant{Text: text, Frequency: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Text < out[j].Text
	})
	return out
}
