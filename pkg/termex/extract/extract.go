// Package extract finds term candidates by matching a tag-sequence pattern
// over every sentence of a corpus.
package extract

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/termex/internal/workerpool"
	"github.com/cognicore/termex/pkg/termex/candidate"
	"github.com/cognicore/termex/pkg/termex/corpus"
	"github.com/cognicore/termex/pkg/termex/stoplist"
)

const (
	// MinSentenceLength is the number of characters a sentence must exceed to
	// be scanned; shorter ones are treated as fragments.
	MinSentenceLength = 30
	// MaxLength is the exclusive upper bound on candidate token length.
	MaxLength = 8
)

// Extractor turns tagged sentences into term candidates.
type Extractor struct {
	pattern   *regexp.Regexp
	stopwords *stoplist.List
	workers   int
	logger    *slog.Logger
}

// New creates an extractor. A nil stoplist means no stopwords.
func New(pattern *regexp.Regexp, stopwords *stoplist.List, workers int, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		pattern:   pattern,
		stopwords: stopwords,
		workers:   workers,
		logger:    logger,
	}
}

// Extract scans all sentences in parallel and returns the candidates in
// corpus order.
func (e *Extractor) Extract(ctx context.Context, c *corpus.Corpus) (*candidate.Set, error) {
	sentences := c.Sentences()
	perSentence, err := workerpool.Map(ctx, sentences, e.workers, func(_ int, s corpus.Sentence) []candidate.Candidate {
		return e.Sentence(s)
	})
	if err != nil {
		return nil, err
	}

	set := candidate.NewSet()
	for _, cands := range perSentence {
		set.Add(cands...)
	}
	e.logger.Debug("candidates extracted", "sentences", len(sentences), "candidates", set.Len())
	return set, nil
}

// Sentence returns the candidates found in one sentence.
func (e *Extractor) Sentence(s corpus.Sentence) []candidate.Candidate {
	if utf8.RuneCountInString(s.Text) <= MinSentenceLength {
		return nil
	}

	tags := s.Tags()
	var out []candidate.Candidate
	for _, loc := range e.pattern.FindAllStringIndex(tags, -1) {
		start := strings.Count(tags[:loc[0]], " ")
		length := strings.Count(tags[loc[0]:loc[1]], " ") + 1

		start, length = e.trim(s.Span(start, length), start, length)
		if length <= 1 || length >= MaxLength {
			continue
		}

		span := s.Span(start, length)
		texts := make([]string, len(span))
		for i, tok := range span {
			texts[i] = tok.Text
		}
		phrase := strings.TrimSuffix(strings.Join(texts, " "), ".")
		if IsWebArtifact(phrase) {
			continue
		}

		key := e.Key(span)
		if key == "" {
			continue
		}
		out = append(out, candidate.Candidate{
			ID:         s.ID + "." + strconv.Itoa(start),
			DocID:      s.DocID,
			SentenceID: s.ID,
			Start:      start,
			Length:     length,
			Phrase:     phrase,
			Key:        key,
		})
	}
	return out
}

// trim drops leading, then trailing stopwords while more than one token
// remains.
func (e *Extractor) trim(span []corpus.Token, start, length int) (int, int) {
	i := 0
	for length > 1 && i < len(span) && e.stopwords.IsStop(span[i].Text) {
		start++
		length--
		i++
	}
	j := len(span) - 1
	for length > 1 && j >= i && e.stopwords.IsStop(span[j].Text) {
		length--
		j--
	}
	return start, length
}

// Key builds the normalized key of a token span: sorted distinct stems of
// the content tokens, joined by a space, with periods removed.
func (e *Extractor) Key(span []corpus.Token) string {
	seen := make(map[string]bool)
	var stems []string
	for _, tok := range span {
		if tok.Tag == "PUN" || tok.Stem == "" || e.stopwords.IsStop(tok.Stem) {
			continue
		}
		if !seen[tok.Stem] {
			seen[tok.Stem] = true
			stems = append(stems, tok.Stem)
		}
	}
	sort.Strings(stems)
	return strings.TrimSpace(strings.ReplaceAll(strings.Join(stems, " "), ".", ""))
}

// IsWebArtifact reports whether a phrase looks like an email address, URL or
// hashtag.
func IsWebArtifact(phrase string) bool {
	lower := strings.ToLower(phrase)
	return strings.ContainsAny(phrase, "@#") ||
		strings.Contains(lower, "http") ||
		strings.Contains(lower, "www")
}
