// Package cleaner normalises raw corpus bytes into word tokens. It
// lower-cases input, strips every rune that is not a letter, and splits on
// whitespace. Fields that become empty after stripping are discarded.
package cleaner

import (
	"strings"
	"unicode"
)

// Clean transforms raw file bytes into an ordered sequence of normalised word
// tokens. It is a pure function and safe to call from any number of
// goroutines at once.
//
// Invalid UTF-8 sequences decode to the replacement rune, which is not a
// letter and is stripped with the rest of the punctuation, so undecodable
// runs vanish at the token level while the remainder of the file is still
// processed.
func Clean(raw []byte) []string {
	fields := strings.Fields(strings.ToLower(string(raw)))
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		word := strings.Map(keepLetters, field)
		if word == "" {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func keepLetters(r rune) rune {
	if unicode.IsLetter(r) {
		return r
	}
	return -1
}
