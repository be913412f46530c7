package acronym

import (
	"strings"
	"unicode"
)

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// BestLongForm aligns the short form against the text preceding it, right to
// left, and returns the shortest lowercased suffix of text that spells it.
// The first short-form character must match at the start of a word. The
// result is extended to a whole word and stripped of a leading determiner or
// one layer of brackets or quotes. ok is false when no alignment exists.
func BestLongForm(short, text string) (string, bool) {
	sf := []rune(strings.ToLower(strings.ReplaceAll(short, "-", "")))
	def := []rune(strings.ToLower(text))
	d := len(def) - 1

	for a := len(sf) - 1; a >= 0; a-- {
		c := sf[a]
		if isAlnum(c) {
			for (d >= 0 && def[d] != c) || (a == 0 && d > 0 && isAlnum(def[d-1])) {
				d--
			}
		}
		if d < 0 {
			return "", false
		}
		d--
	}

	// Extend to the start of the leftmost matched word.
	start := 0
	for i := d; i >= 0; i-- {
		if def[i] == ' ' {
			start = i + 1
			break
		}
	}
	long := strings.TrimSpace(string(def[start:]))

	switch {
	case strings.HasPrefix(long, "an "):
		long = long[3:]
	case strings.HasPrefix(long, "a "):
		long = long[2:]
	case strings.HasPrefix(long, "the "):
		long = long[4:]
	case strings.HasPrefix(long, "[") && strings.HasSuffix(long, "]") && len(long) > 1:
		long = long[1 : len(long)-1]
	case strings.HasPrefix(long, "'") && strings.HasSuffix(long, "'") && len(long) > 1:
		long = long[1 : len(long)-1]
	}
	return long, true
}

// MatchPair finds the long form of short in text and accepts it only if it
// passes the sanity checks for a plausible definition. The returned long form
// is lowercase.
func MatchPair(short, text string) (string, bool) {
	if len([]rune(short)) < 2 {
		return "", false
	}
	long, ok := BestLongForm(short, text)
	if !ok {
		return "", false
	}

	tokens := len(strings.Split(strings.ReplaceAll(long, "-", " "), " "))
	chars := 0
	for _, r := range short {
		if isAlnum(r) {
			chars++
		}
	}
	sf := strings.ReplaceAll(strings.ToLower(short), " ", "")
	sfRunes := []rune(sf)
	longRunes := []rune(long)

	switch {
	case len(sfRunes) == 0, len(longRunes) < 8:
		return "", false
	case len(longRunes) <= len(sfRunes):
		return "", false
	case strings.HasPrefix(long, sf+" "),
		strings.Contains(long, " "+sf+" "),
		strings.HasSuffix(long, " "+sf):
		return "", false
	case sfRunes[0] != longRunes[0]:
		return "", false
	case tokens > 2*chars || tokens > chars+5:
		return "", false
	case strings.ContainsAny(long, "[]"):
		return "", false
	}

	words := strings.Fields(long)
	if len(words) > 2 {
		last2 := strings.Join(words[len(words)-2:], " ")
		if !strings.ContainsRune(last2, sfRunes[len(sfRunes)-1]) {
			return "", false
		}
	}

	// Words sharing no character with the short form are wasted; allow one.
	keep := make(map[rune]bool)
	for _, r := range strings.ReplaceAll(sf, "-", "") {
		keep[r] = true
	}
	remainder := strings.Map(func(r rune) rune {
		if r == ' ' || keep[r] {
			return r
		}
		return -1
	}, long)
	if len(words)-len(strings.Fields(remainder)) >= 2 {
		return "", false
	}
	return long, true
}
