// Package candidate holds term candidates: one row per pattern match, never
// deduplicated. Keys may be rewritten by later phases; every rewrite is
// recorded in the set's rename log.
package candidate

import (
	"sort"
	"strings"
)

// Candidate is one occurrence of a potential term.
type Candidate struct {
	ID         string
	DocID      string
	SentenceID string
	Start      int // token position of the first token
	Length     int // number of tokens
	Phrase     string
	Key        string // sorted stems of the content tokens
	Synthetic  bool   // added by acronym integration, has no token span
}

// Flat returns the phrase lowercased with all spaces removed.
func (c Candidate) Flat() string {
	return strings.ToLower(strings.ReplaceAll(c.Phrase, " ", ""))
}

// Lower returns the lowercased phrase.
func (c Candidate) Lower() string {
	return strings.ToLower(c.Phrase)
}

// Rename records one key rewrite.
type Rename struct {
	From   string
	To     string
	Reason string
	Count  int // candidates affected
}

// Set is an ordered collection of candidates. It is not safe for concurrent
// writes; phases own it one at a time.
type Set struct {
	items []Candidate
	log   []Rename
}

// NewSet creates a set holding the given candidates.
func NewSet(items ...Candidate) *Set {
	s := &Set{}
	s.Add(items...)
	return s
}

// Add appends candidates.
func (s *Set) Add(items ...Candidate) {
	s.items = append(s.items, items...)
}

// Len returns the number of candidates.
func (s *Set) Len() int {
	return len(s.items)
}

// All returns a copy of the candidates in insertion order.
func (s *Set) All() []Candidate {
	out := make([]Candidate, len(s.items))
	copy(out, s.items)
	return out
}

// Log returns the rename log in the order the rewrites happened.
func (s *Set) Log() []Rename {
	out := make([]Rename, len(s.log))
	copy(out, s.log)
	return out
}

// RenameKey rewrites every candidate keyed from to the key to. It returns the
// number of candidates changed.
func (s *Set) RenameKey(from, to, reason string) int {
	if from == to {
		return 0
	}
	n := 0
	for i := range s.items {
		if s.items[i].Key == from {
			s.items[i].Key = to
			n++
		}
	}
	s.record(from, to, reason, n)
	return n
}

// RenamePhrase rewrites the key of every candidate whose lowercased phrase
// equals phrase. It returns the number of candidates changed.
func (s *Set) RenamePhrase(phrase, to, reason string) int {
	phrase = strings.ToLower(phrase)
	changed := make(map[string]int)
	for i := range s.items {
		if s.items[i].Key != to && s.items[i].Lower() == phrase {
			changed[s.items[i].Key]++
			s.items[i].Key = to
		}
	}
	total := 0
	for _, from := range sortedKeys(changed) {
		s.record(from, to, reason, changed[from])
		total += changed[from]
	}
	return total
}

func (s *Set) record(from, to, reason string, n int) {
	if n == 0 {
		return
	}
	s.log = append(s.log, Rename{From: from, To: to, Reason: reason, Count: n})
}

// KeyFrequency counts candidates per key.
func (s *Set) KeyFrequency() map[string]int {
	freq := make(map[string]int)
	for _, c := range s.items {
		freq[c.Key]++
	}
	return freq
}

// Variants counts lowercased phrases per key.
func (s *Set) Variants() map[string]map[string]int {
	out := make(map[string]map[string]int)
	for _, c := range s.items {
		m, ok := out[c.Key]
		if !ok {
			m = make(map[string]int)
			out[c.Key] = m
		}
		m[c.Lower()]++
	}
	return out
}

// Coverage indexes the token positions per sentence that lie inside the
// span of a non-synthetic candidate.
func (s *Set) Coverage() map[string]map[int]bool {
	out := make(map[string]map[int]bool)
	for _, c := range s.items {
		if c.Synthetic {
			continue
		}
		m, ok := out[c.SentenceID]
		if !ok {
			m = make(map[int]bool)
			out[c.SentenceID] = m
		}
		for p := c.Start; p < c.Start+c.Length; p++ {
			m[p] = true
		}
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
