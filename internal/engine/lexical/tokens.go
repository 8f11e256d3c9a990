// internal/engine/lexical/tokens.go
package lexical

import (
	"strconv"
	"strings"
	"unicode"
)

// numberWords maps Spanish and English number words to quantities, matching
// the vocabulary the quote form historically accepted.
var numberWords = map[string]int{
	"un": 1, "una": 1, "uno": 1, "dos": 2, "tres": 3, "cuatro": 4,
	"cinco": 5, "seis": 6, "siete": 7, "ocho": 8, "nueve": 9, "diez": 10,
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

var accentFold = map[rune]rune{
	'á': 'a', 'à': 'a', 'ä': 'a', 'â': 'a',
	'é': 'e', 'è': 'e', 'ë': 'e', 'ê': 'e',
	'í': 'i', 'ì': 'i', 'ï': 'i', 'î': 'i',
	'ó': 'o', 'ò': 'o', 'ö': 'o', 'ô': 'o',
	'ú': 'u', 'ù': 'u', 'ü': 'u', 'û': 'u',
}

// Normalize lowercases the text and folds accented vowels so that
// "Clóset" and "closet" match the same keyword.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	return strings.Map(func(r rune) rune {
		if folded, ok := accentFold[r]; ok {
			return folded
		}
		return r
	}, lower)
}

// Tokenize splits normalized text into letter/digit runs.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// parseCount converts a numeral or number-word token into a quantity.
func parseCount(token string) (int, bool) {
	if n, err := strconv.Atoi(token); err == nil && n > 0 {
		return n, true
	}
	if n, ok := numberWords[token]; ok {
		return n, true
	}
	return 0, false
}
