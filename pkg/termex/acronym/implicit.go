package acronym

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/termex/internal/workerpool"
	"github.com/cognicore/termex/pkg/termex/candidate"
	"github.com/cognicore/termex/pkg/termex/corpus"
)

// auxiliaries are verbs that say nothing about the context of a mention.
var auxiliaries = map[string]bool{"be": true, "have": true, "do": true}

// ImplicitResolver finds frequent uppercase tokens whose long forms are used
// elsewhere in the corpus without an explicit definition.
type ImplicitResolver struct {
	amin    int
	workers int
	logger  *slog.Logger
}

// NewImplicit creates an implicit resolver. Tokens must occur more than amin
// times to be considered.
func NewImplicit(amin, workers int, logger *slog.Logger) *ImplicitResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImplicitResolver{amin: amin, workers: workers, logger: logger}
}

// IsAcronymToken reports whether a token looks like an implicit acronym:
// uppercase, shorter than six characters, starting with two and ending with
// one ASCII capital letter.
func IsAcronymToken(tok string) bool {
	n := utf8.RuneCountInString(tok)
	if n < 3 || n >= 6 || strings.ToUpper(tok) != tok {
		return false
	}
	isCap := func(b byte) bool { return b >= 'A' && b <= 'Z' }
	return isCap(tok[0]) && isCap(tok[1]) && isCap(tok[len(tok)-1])
}

// Resolve picks, for every frequent acronym token, the candidate sense whose
// co-occurring verbs are most similar to the acronym's.
func (r *ImplicitResolver) Resolve(ctx context.Context, c *corpus.Corpus, set *candidate.Set) (*Dictionary, error) {
	counts := make(map[string]int)
	mentions := make(map[string]map[string]bool) // acronym -> sentence IDs
	verbs := make(map[string]map[string]float64) // sentence ID -> verb lemma counts
	for _, s := range c.Sentences() {
		for _, tok := range s.Tokens {
			if IsAcronymToken(tok.Text) {
				counts[tok.Text]++
				if mentions[tok.Text] == nil {
					mentions[tok.Text] = make(map[string]bool)
				}
				mentions[tok.Text][s.ID] = true
			}
			lemma := strings.ToLower(tok.Lemma)
			if tok.Tag == "VB" && !auxiliaries[lemma] {
				if verbs[s.ID] == nil {
					verbs[s.ID] = make(map[string]float64)
				}
				verbs[s.ID][lemma]++
			}
		}
	}

	var acronyms []string
	for tok, n := range counts {
		if n > r.amin {
			acronyms = append(acronyms, tok)
		}
	}
	sort.Strings(acronyms)

	cands := set.All()
	freq := set.KeyFrequency()
	keySentences := make(map[string]map[string]bool)
	for _, cand := range cands {
		if keySentences[cand.Key] == nil {
			keySentences[cand.Key] = make(map[string]bool)
		}
		keySentences[cand.Key][cand.SentenceID] = true
	}

	results, err := workerpool.Map(ctx, acronyms, r.workers, func(_ int, acr string) *Acronym {
		v1 := sumVerbs(verbs, mentions[acr])
		best, bestSim := "", -1.0
		for _, key := range senses(acr, cands) {
			if freq[key] <= 1 {
				continue
			}
			sim, ok := cosine(v1, sumVerbs(verbs, keySentences[key]))
			if !ok {
				continue
			}
			if sim > bestSim {
				best, bestSim = key, sim
			}
		}
		if best == "" {
			return nil
		}
		r.logger.Debug("implicit acronym", "short", acr, "key", best, "similarity", bestSim)
		return &Acronym{Short: acr, Long: commonPhrase(cands, best), Key: best}
	})
	if err != nil {
		return nil, err
	}

	dict := NewDictionary()
	for _, a := range results {
		if a != nil {
			dict.Put(*a)
		}
	}
	r.logger.Debug("implicit acronyms resolved", "tokens", len(acronyms), "acronyms", dict.Len())
	return dict, nil
}

// senses returns, sorted, the keys of candidates whose token initials spell
// the acronym.
func senses(acr string, cands []candidate.Candidate) []string {
	letters := []rune(strings.ToLower(acr))
	seen := make(map[string]bool)
	var out []string
	for _, c := range cands {
		if seen[c.Key] {
			continue
		}
		words := strings.Split(c.Lower(), " ")
		if len(words) != len(letters) {
			continue
		}
		match := true
		for i, w := range words {
			first, _ := utf8.DecodeRuneInString(w)
			if w == "" || first != letters[i] {
				match = false
				break
			}
		}
		if match {
			seen[c.Key] = true
			out = append(out, c.Key)
		}
	}
	sort.Strings(out)
	return out
}

func sumVerbs(verbs map[string]map[string]float64, sentences map[string]bool) map[string]float64 {
	out := make(map[string]float64)
	for id := range sentences {
		for lemma, n := range verbs[id] {
			out[lemma] += n
		}
	}
	return out
}

// cosine compares two verb count vectors. ok is false when either is empty.
func cosine(a, b map[string]float64) (float64, bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	dims := make(map[string]bool)
	for k := range a {
		dims[k] = true
	}
	for k := range b {
		dims[k] = true
	}
	names := make([]string, 0, len(dims))
	for k := range dims {
		names = append(names, k)
	}
	sort.Strings(names)

	x := make([]float64, len(names))
	y := make([]float64, len(names))
	for i, k := range names {
		x[i], y[i] = a[k], b[k]
	}
	return floats.Dot(x, y) / (floats.Norm(x, 2) * floats.Norm(y, 2)), true
}

// commonPhrase returns the most frequent lowercased phrase of a key.
func commonPhrase(cands []candidate.Candidate, key string) string {
	counts := make(map[string]int)
	for _, c := range cands {
		if c.Key == key {
			counts[c.Lower()]++
		}
	}
	best, bestN := "", 0
	for p, n := range counts {
		if n > bestN || (n == bestN && p < best) {
			best, bestN = p, n
		}
	}
	return best
}
