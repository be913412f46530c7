package normalize

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultMaxPasses bounds the substitute-and-merge loop.
const DefaultMaxPasses = 3

// Term is a distinct candidate key selected for scoring, with its canonical
// token bag.
type Term struct {
	Key      string
	Tokens   []string // sorted, deduplicated, after substitution
	Expanded string   // Tokens joined by a space
}

// Select returns, sorted by key, the keys worth scoring: multi-word, longer
// than five characters, starting with a lowercase letter or digit and seen
// more than once.
func Select(freq map[string]int) []Term {
	var out []Term
	for key, n := range freq {
		if n <= 1 || utf8.RuneCountInString(key) <= 5 || !strings.Contains(key, " ") {
			continue
		}
		if c := key[0]; !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') {
			continue
		}
		tokens := strings.Fields(key)
		out = append(out, Term{Key: key, Tokens: tokens, Expanded: strings.Join(tokens, " ")})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Expand applies subst to tokens and returns the sorted, deduplicated bag.
func Expand(tokens []string, subst map[string]string) []string {
	mapped := make([]string, len(tokens))
	for i, t := range tokens {
		if to, ok := subst[t]; ok {
			t = to
		}
		mapped[i] = t
	}
	return dedupSorted(mapped)
}

// Outcome is the result of term normalization.
type Outcome struct {
	Terms         []Term
	Substitutions map[string]string // token -> representative, composed over all passes
	Passes        int
}

// TermNormalizer canonicalizes term token bags by repeating token clustering
// and substitution until no token is renamed.
type TermNormalizer struct {
	tokens    *TokenNormalizer
	maxPasses int
	logger    *slog.Logger
}

// NewTermNormalizer creates a term normalizer. maxPasses below 1 means
// DefaultMaxPasses.
func NewTermNormalizer(tokens *TokenNormalizer, maxPasses int, logger *slog.Logger) *TermNormalizer {
	if maxPasses < 1 {
		maxPasses = DefaultMaxPasses
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TermNormalizer{tokens: tokens, maxPasses: maxPasses, logger: logger}
}

// Normalize runs the fixed-point loop. Each pass builds the vocabulary of the
// current bags, clusters it and rewrites every bag; the loop stops after a
// pass that renames nothing or after maxPasses passes.
func (tn *TermNormalizer) Normalize(ctx context.Context, terms []Term) (Outcome, error) {
	bags := make([][]string, len(terms))
	for i, t := range terms {
		bags[i] = dedupSorted(t.Tokens)
	}

	total := make(map[string]string)
	passes := 0
	for passes < tn.maxPasses {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		var vocab []string
		for _, bag := range bags {
			vocab = append(vocab, bag...)
		}
		subst, err := tn.tokens.Substitutions(ctx, vocab)
		if err != nil {
			return Outcome{}, err
		}
		passes++
		if len(subst) == 0 {
			break
		}

		for from, to := range total {
			if next, ok := subst[to]; ok {
				total[from] = next
			}
		}
		for from, to := range subst {
			total[from] = to
		}
		for i := range bags {
			bags[i] = Expand(bags[i], subst)
		}
		tn.logger.Debug("token normalization pass", "pass", passes, "renamed", len(subst))
	}

	out := make([]Term, len(terms))
	for i, t := range terms {
		out[i] = Term{Key: t.Key, Tokens: bags[i], Expanded: strings.Join(bags[i], " ")}
	}
	return Outcome{Terms: out, Substitutions: total, Passes: passes}, nil
}
