package acronym

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/cognicore/termex/pkg/termex/candidate"
	"github.com/cognicore/termex/pkg/termex/corpus"
)

// Rename log reasons used by the integrator.
const (
	ReasonNestedMention = "acronym-nested"
	ReasonMultiWord     = "acronym-multiword"
)

// IntegrationStats counts what Integrate changed.
type IntegrationStats struct {
	Expanded    int // dictionary entries rebound through nested definitions
	Standalone  int // single-token candidates added for bare mentions
	Rewritten   int // candidates rekeyed because they mention an acronym
	Synthesized int // occurrences of multi-word short forms the pattern missed
}

// Integrator folds acronym mentions into the keys of their long forms.
type Integrator struct {
	logger *slog.Logger
}

// NewIntegrator creates an integrator.
func NewIntegrator(logger *slog.Logger) *Integrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Integrator{logger: logger}
}

// Integrate rewrites set and dict in place. Steps run in a fixed order:
// nested definitions are expanded, bare mentions become candidates, phrases
// mentioning a short form are rekeyed, and multi-word short forms are
// reconciled with the sentences that contain them.
func (in *Integrator) Integrate(c *corpus.Corpus, set *candidate.Set, dict *Dictionary) IntegrationStats {
	var stats IntegrationStats
	if dict.Len() == 0 {
		return stats
	}

	stats.Expanded = in.expandDefinitions(dict)
	acronyms := dict.All()
	stats.Standalone = in.addStandalone(c, set, acronyms)
	stats.Rewritten = in.rewriteNested(set, acronyms)
	stats.Synthesized = in.reconcileMultiWord(c, set, acronyms)

	in.logger.Debug("acronyms integrated",
		"expanded", stats.Expanded,
		"standalone", stats.Standalone,
		"rewritten", stats.Rewritten,
		"synthesized", stats.Synthesized)
	return stats
}

// expandDefinitions rebinds entries whose long form mentions another short
// form, replacing that short form's tokens with the other entry's key. One
// pass over a snapshot of the dictionary.
func (in *Integrator) expandDefinitions(dict *Dictionary) int {
	snapshot := dict.All()
	n := 0
	for _, p := range snapshot {
		key := p.Key
		for _, a := range byShortLength(snapshot) {
			if a.Short == p.Short || !containsWord(p.Long, a.Short) {
				continue
			}
			key = substitute(key, strings.ToLower(a.Short), a.Key)
		}
		if key == p.Key {
			continue
		}
		for _, q := range snapshot {
			if strings.EqualFold(q.Long, p.Long) {
				dict.SetKey(q.Short, key)
				n++
			}
		}
	}
	return n
}

// addStandalone adds a single-token candidate for every mention of a short
// form that no existing candidate covers.
func (in *Integrator) addStandalone(c *corpus.Corpus, set *candidate.Set, acronyms []Acronym) int {
	byShort := make(map[string]Acronym, len(acronyms))
	for _, a := range acronyms {
		byShort[a.Short] = a
	}
	covered := set.Coverage()

	var added []candidate.Candidate
	for _, s := range c.Sentences() {
		for _, tok := range s.Tokens {
			a, ok := byShort[tok.Text]
			if !ok || tok.Tag == "IN" || covered[s.ID][tok.Position] {
				continue
			}
			added = append(added, candidate.Candidate{
				ID:         s.ID + "." + strconv.Itoa(tok.Position),
				DocID:      s.DocID,
				SentenceID: s.ID,
				Start:      tok.Position,
				Length:     1,
				Phrase:     tok.Text,
				Key:        a.Key,
			})
		}
	}
	set.Add(added...)
	return len(added)
}

// rewriteNested rekeys candidates whose phrase mentions a short form,
// applying longer short forms first.
func (in *Integrator) rewriteNested(set *candidate.Set, acronyms []Acronym) int {
	ordered := byShortLength(acronyms)
	targets := make(map[string]string) // lowercased phrase -> new key
	var phrases []string
	for _, c := range set.All() {
		phrase := c.Lower()
		if _, done := targets[phrase]; done {
			continue
		}
		mentioned := false
		for _, a := range acronyms {
			if c.Key != a.Key && containsWord(phrase, a.Short) {
				mentioned = true
				break
			}
		}
		if !mentioned {
			continue
		}

		key := c.Key
		for _, a := range ordered {
			if containsWord(phrase, a.Short) {
				key = substitute(key, strings.ToLower(a.Short), a.Key)
			}
		}
		targets[phrase] = key
		phrases = append(phrases, phrase)
	}

	sort.Strings(phrases)
	n := 0
	for _, phrase := range phrases {
		n += set.RenamePhrase(phrase, targets[phrase], ReasonNestedMention)
	}
	return n
}

// reconcileMultiWord rekeys candidates equal to a multi-word short form and
// adds synthetic candidates for the sentences the pattern missed.
func (in *Integrator) reconcileMultiWord(c *corpus.Corpus, set *candidate.Set, acronyms []Acronym) int {
	added := 0
	for _, a := range acronyms {
		short := strings.ToLower(a.Short)
		if !strings.Contains(short, " ") {
			continue
		}
		set.RenamePhrase(short, a.Key, ReasonMultiWord)

		extra := 0
		for _, s := range c.Sentences() {
			if containsWord(s.Text, short) {
				extra++
			}
		}
		for _, cand := range set.All() {
			if containsWord(cand.Phrase, short) {
				extra--
			}
		}

		length := len(strings.Fields(short))
		for ; extra > 0; extra-- {
			set.Add(candidate.Candidate{
				ID:        short + "." + strconv.Itoa(extra),
				Length:    length,
				Phrase:    short,
				Key:       a.Key,
				Synthetic: true,
			})
			added++
		}
	}
	return added
}

// containsWord reports whether word occurs in text as a run of whole words,
// ignoring case.
func containsWord(text, word string) bool {
	return strings.Contains(" "+strings.ToLower(text)+" ", " "+strings.ToLower(word)+" ")
}

// substitute removes the tokens of remove from key and adds the tokens of
// add, returning the sorted, deduplicated result.
func substitute(key, remove, add string) string {
	drop := make(map[string]bool)
	for _, t := range strings.Fields(remove) {
		drop[t] = true
	}
	bag := make(map[string]bool)
	for _, t := range strings.Fields(key) {
		if !drop[t] {
			bag[t] = true
		}
	}
	for _, t := range strings.Fields(add) {
		bag[t] = true
	}
	out := make([]string, 0, len(bag))
	for t := range bag {
		out = append(out, t)
	}
	sort.Strings(out)
	return strings.Join(out, " ")
}

// byShortLength orders acronyms longest short form first, then by short form.
func byShortLength(acronyms []Acronym) []Acronym {
	out := make([]Acronym, len(acronyms))
	copy(out, acronyms)
	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].Short) != len(out[j].Short) {
			return len(out[i].Short) > len(out[j].Short)
		}
		return out[i].Short < out[j].Short
	})
	return out
}
