// Package moderation censors forbidden words in text message bodies before
// they are persisted, so live fan-out, history and search all observe the
// same content.
package moderation

import (
	"bufio"
	"os"
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"

	"mood-chat/errors"
)

// Moderator matches a normalized form of the input against an Aho-Corasick
// automaton and masks the original characters of every hit, preserving the
// spacing and punctuation around them.
type Moderator struct {
	matcher     *goahocorasick.Machine
	replacement rune
}

// NewModerator builds the automaton from the word list. Words are
// normalized the same way the input will be, so simple obfuscations
// (case, leet speak, separators) still match.
func NewModerator(words []string, replacement rune) (*Moderator, error) {
	if len(words) == 0 {
		return nil, errors.ErrEmptyWordlist
	}
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		if norm := normalize(word); len(norm) > 0 {
			patterns = append(patterns, norm)
		}
	}

	machine := new(goahocorasick.Machine)
	if err := machine.Build(patterns); err != nil {
		return nil, err
	}
	return &Moderator{matcher: machine, replacement: replacement}, nil
}

// Censor masks every forbidden span of the input and returns the result.
// The input is returned untouched when nothing matches.
func (m *Moderator) Censor(original string) string {
	origRunes := []rune(original)
	norm, origIdx := normalizeMapped(origRunes)
	if len(norm) == 0 {
		return original
	}

	spans := m.matcher.MultiPatternSearch(norm, false)
	if len(spans) == 0 {
		return original
	}

	for _, span := range spans {
		start := span.Pos
		end := start + len(span.Word)
		if start < 0 || end > len(origIdx) {
			continue
		}
		for i := origIdx[start]; i <= origIdx[end-1]; i++ {
			origRunes[i] = m.replacement
		}
	}
	return string(origRunes)
}

// LoadWordlist reads one forbidden word per line, skipping blanks and
// comment lines.
func LoadWordlist(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, scanner.Err()
}

// normalizeMapped lowers and de-leets the runes while remembering, for
// every kept rune, its index in the original slice.
func normalizeMapped(origRunes []rune) ([]rune, []int) {
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))
	for i, r := range origRunes {
		clean := simplify(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return norm, origIdx
}

func normalize(word string) []rune {
	norm, _ := normalizeMapped([]rune(word))
	return norm
}

// simplify maps common leet speak characters back to their alphabet
// counterparts.
func simplify(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters ignored during pattern matching.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
