package acronym

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var greekNames = map[string]string{
	"alpha": "a", "beta": "b", "gamma": "g", "delta": "d", "epsilon": "e",
	"zeta": "z", "eta": "e", "theta": "t", "iota": "i", "kappa": "k",
	"lambda": "l", "mu": "m", "nu": "n", "xi": "x", "omicron": "o",
	"pi": "p", "rho": "r", "sigma": "s", "tau": "t", "upsilon": "u",
	"phi": "p", "chi": "c", "psi": "p", "omega": "o",
}

var greekLetters = map[rune]rune{
	'α': 'a', 'β': 'b', 'γ': 'g', 'δ': 'd', 'ε': 'e', 'ζ': 'z', 'η': 'e',
	'θ': 't', 'ι': 'i', 'κ': 'k', 'λ': 'l', 'μ': 'm', 'ν': 'n', 'ξ': 'x',
	'ο': 'o', 'π': 'p', 'ρ': 'r', 'σ': 's', 'ς': 's', 'τ': 't', 'υ': 'u',
	'φ': 'p', 'χ': 'c', 'ψ': 'p', 'ω': 'o',
}

// FoldGreek replaces spelled-out Greek letter names ("kappa") and Greek
// characters ("κ") with the first letter of their Latin name, so that
// "NF kappa B" and "NFκB" are sized like "NFkB".
func FoldGreek(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if latin, ok := greekNames[strings.ToLower(w)]; ok {
			words[i] = latin
		}
	}
	return strings.Map(func(r rune) rune {
		if latin, ok := greekLetters[unicode.ToLower(r)]; ok {
			return latin
		}
		return r
	}, strings.Join(words, " "))
}

// IsValidShortForm reports whether s looks like an acronym.
func IsValidShortForm(s string) bool {
	s = FoldGreek(s)
	n := utf8.RuneCountInString(s)
	if n < 2 || n > 8 {
		return false
	}

	upper, lower := 0, 0
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper++
		case unicode.IsLower(r):
			lower++
		}
	}
	if upper == 0 || lower > upper {
		return false
	}

	runes := []rune(s)
	first := runes[0]
	if !unicode.IsLetter(first) && !unicode.IsDigit(first) && first != '(' {
		return false
	}
	for _, r := range strings.ToLower(s) {
		if !isShortFormChar(r) {
			return false
		}
	}
	return runes[1] != '\''
}

func isShortFormChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case unicode.IsSpace(r), r == '\'', r == '/', r == '-':
		return true
	}
	return false
}
