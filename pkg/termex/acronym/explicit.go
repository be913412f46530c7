package acronym

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/cognicore/termex/internal/workerpool"
	"github.com/cognicore/termex/pkg/termex/candidate"
	"github.com/cognicore/termex/pkg/termex/corpus"
)

// ExplicitResolver finds acronyms defined in running text, as in
// "retinoic acid receptor (RAR)".
type ExplicitResolver struct {
	analyzer Analyzer
	workers  int
	logger   *slog.Logger
}

// NewExplicit creates an explicit resolver. A nil analyzer splits on
// whitespace.
func NewExplicit(an Analyzer, workers int, logger *slog.Logger) *ExplicitResolver {
	if an == nil {
		an = FieldsAnalyzer{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExplicitResolver{analyzer: an, workers: workers, logger: logger}
}

// Resolve scans sentences with parentheses for definitions. Conflicting long
// forms of one short form are settled by Preferred in corpus order; a short
// form found ambiguous stays ambiguous. Long forms that match no candidate
// phrase are dropped.
func (r *ExplicitResolver) Resolve(ctx context.Context, c *corpus.Corpus, set *candidate.Set) (*Dictionary, error) {
	perSentence, err := workerpool.Map(ctx, c.Sentences(), r.workers, func(_ int, s corpus.Sentence) []Pair {
		if !hasParentheses(s.Text) {
			return nil
		}
		return ExtractPairs(s.Text)
	})
	if err != nil {
		return nil, err
	}

	longs := make(map[string]string)
	ambiguous := make(map[string]bool)
	for _, pairs := range perSentence {
		for _, p := range pairs {
			if ambiguous[p.Short] {
				continue
			}
			long := strings.Join(r.analyzer.Tokenize(p.Long), " ")
			existing, seen := longs[p.Short]
			if !seen {
				longs[p.Short] = long
				continue
			}
			if existing == long {
				continue
			}

			choice, rule := Preferred(r.analyzer, p.Short, long, existing)
			r.logger.Debug("acronym conflict", "short", p.Short, "new", long, "existing", existing, "choice", choice.String(), "rule", rule)
			switch choice {
			case KeepFirst:
				longs[p.Short] = long
			case Ambiguous:
				delete(longs, p.Short)
				ambiguous[p.Short] = true
			}
		}
	}

	dict := NewDictionary()
	shorts := make([]string, 0, len(longs))
	for s := range longs {
		shorts = append(shorts, s)
	}
	sort.Strings(shorts)
	for _, short := range shorts {
		long := longs[short]
		key, ok := bindKey(set, long)
		if !ok {
			r.logger.Debug("acronym long form is not a candidate", "short", short, "long", long)
			continue
		}
		dict.Put(Acronym{Short: short, Long: long, Key: key})
	}
	for short := range ambiguous {
		dict.MarkAmbiguous(short)
	}

	r.logger.Debug("explicit acronyms resolved", "acronyms", dict.Len(), "ambiguous", len(ambiguous))
	return dict, nil
}

func hasParentheses(text string) bool {
	i := strings.Index(text, "(")
	return i >= 0 && strings.Contains(text[i:], ")")
}
