// Package normalize merges spelling and tokenization variants of term
// candidates and canonicalizes their token bags.
package normalize

import (
	"sort"
	"strings"

	"github.com/cognicore/termex/pkg/termex/candidate"
)

// Rename log reasons used by the variant merges.
const (
	ReasonTokenization = "tokenization"
	ReasonHyphenation  = "hyphenation"
)

type keyChange struct {
	from, to string
}

// MergeTokenization unifies candidates that differ only in tokenization, such
// as "posterolateral corner" and "postero lateral corner". The variant with
// more tokens gives its key to the other. It returns the number of
// candidates rekeyed.
func MergeTokenization(set *candidate.Set) int {
	type shape struct {
		length int
		key    string
	}
	byFlat := make(map[string]map[shape]bool)
	for _, c := range set.All() {
		g, ok := byFlat[c.Flat()]
		if !ok {
			g = make(map[shape]bool)
			byFlat[c.Flat()] = g
		}
		g[shape{length: c.Length, key: c.Key}] = true
	}

	changes := make(map[keyChange]bool)
	for _, group := range byFlat {
		for p1 := range group {
			for p2 := range group {
				if p1.length > p2.length && p1.key != p2.key {
					changes[keyChange{from: p2.key, to: p1.key}] = true
				}
			}
		}
	}
	return apply(set, changes, ReasonTokenization)
}

// MergeHyphenation unifies hyphenated phrases with their spaced and closed
// spellings: "il-2 receptor" takes the key of "il 2 receptor", and
// "co-operation" gives its key to "cooperation".
func MergeHyphenation(set *candidate.Set) int {
	all := set.All()
	byLower := make(map[string][]candidate.Candidate)
	for _, c := range all {
		byLower[c.Lower()] = append(byLower[c.Lower()], c)
	}

	spaced := make(map[keyChange]bool)
	closed := make(map[keyChange]bool)
	for _, p1 := range all {
		if !strings.Contains(p1.Flat(), "-") {
			continue
		}
		lower := p1.Lower()
		for _, p2 := range byLower[strings.ReplaceAll(lower, "-", " ")] {
			spaced[keyChange{from: p1.Key, to: p2.Key}] = true
		}
		for _, p2 := range byLower[strings.ReplaceAll(lower, "-", "")] {
			if strings.ReplaceAll(p1.Key, "-", "") == p2.Key {
				closed[keyChange{from: p2.Key, to: p1.Key}] = true
			}
		}
	}
	return apply(set, spaced, ReasonHyphenation) + apply(set, closed, ReasonHyphenation)
}

// apply performs key changes in sorted order so the outcome does not depend
// on map iteration.
func apply(set *candidate.Set, changes map[keyChange]bool, reason string) int {
	ordered := make([]keyChange, 0, len(changes))
	for ch := range changes {
		if ch.from != ch.to {
			ordered = append(ordered, ch)
		}
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].from != ordered[j].from {
			return ordered[i].from < ordered[j].from
		}
		return ordered[i].to < ordered[j].to
	})

	n := 0
	for _, ch := range ordered {
		n += set.RenameKey(ch.from, ch.to, reason)
	}
	return n
}
