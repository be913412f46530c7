package normalize

import (
	"context"
	"log/slog"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/xrash/smetrics"

	"github.com/cognicore/termex/internal/workerpool"
)

// DefaultSmin is the default token similarity threshold.
const DefaultSmin = 0.962

type edge struct {
	from, to string
}

// TokenNormalizer clusters near-duplicate tokens ("tumour", "tumor") by
// Jaro-Winkler similarity.
type TokenNormalizer struct {
	smin    float64
	workers int
	logger  *slog.Logger
}

// NewTokenNormalizer creates a token normalizer with similarity threshold
// smin.
func NewTokenNormalizer(smin float64, workers int, logger *slog.Logger) *TokenNormalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenNormalizer{smin: smin, workers: workers, logger: logger}
}

// Substitutions returns a map from each clustered token to its
// representative. Only tokens starting with the same letter (or an "e"
// paired with "a"/"o", for ligature spellings) whose lengths differ by at
// most one and which contain no digits are compared. A token that is itself
// replaced never serves as a representative, and a token similar to several
// representatives maps to the lexicographically smallest.
func (n *TokenNormalizer) Substitutions(ctx context.Context, vocab []string) (map[string]string, error) {
	tokens := dedupSorted(vocab)
	buckets := make(map[rune][]string)
	for _, t := range tokens {
		r, _ := utf8.DecodeRuneInString(t)
		buckets[r] = append(buckets[r], t)
	}

	perToken, err := workerpool.Map(ctx, tokens, n.workers, func(_ int, t1 string) []edge {
		if hasDigit(t1) {
			return nil
		}
		first, _ := utf8.DecodeRuneInString(t1)
		pool := buckets[first]
		if first == 'e' {
			pool = append(append(append([]string(nil), pool...), buckets['a']...), buckets['o']...)
		}
		var out []edge
		for _, t2 := range pool {
			if t1 >= t2 || hasDigit(t2) {
				continue
			}
			if abs(utf8.RuneCountInString(t1)-utf8.RuneCountInString(t2)) >= 2 {
				continue
			}
			if smetrics.JaroWinkler(t1, t2, 0.7, 4) > n.smin {
				out = append(out, edge{from: t1, to: t2})
			}
		}
		return out
	})
	if err != nil {
		return nil, err
	}

	var edges []edge
	targets := make(map[string]bool)
	for _, es := range perToken {
		for _, e := range es {
			edges = append(edges, e)
			targets[e.to] = true
		}
	}

	subst := make(map[string]string)
	for _, e := range edges {
		if targets[e.from] {
			continue // second hop
		}
		if cur, ok := subst[e.to]; !ok || e.from < cur {
			subst[e.to] = e.from
		}
	}
	n.logger.Debug("token similarity", "vocabulary", len(tokens), "edges", len(edges), "substitutions", len(subst))
	return subst, nil
}

func dedupSorted(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" && !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
