package wordfreq

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/chiffre/internal/freq"
	"github.com/verte-zerg/chiffre/internal/text"
)

// Words returns up to limit words of lang, most frequent first. Words are
// accent-folded; those that still hold anything but ASCII letters are
// skipped, as are single letters.
func Words(wheelPath, lang, listType string, limit int) ([]Word, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than 0")
	}
	entries, err := readWords(wheelPath, lang, listType)
	if err != nil {
		return nil, err
	}

	out := make([]Word, 0, min(limit, len(entries)))
	seen := make(map[string]struct{})
	for _, entry := range entries {
		word, ok := asciiWord(entry.Text)
		if !ok {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, Word{Text: word, Weight: entry.Weight})
		if len(out) >= limit {
			break
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no words found for %s/%s", lang, listType)
	}
	return out, nil
}

func asciiWord(word string) (string, bool) {
	folded := strings.ToLower(text.FoldAccents(word))
	if utf8.RuneCountInString(folded) < 2 {
		return "", false
	}
	for i := 0; i < len(folded); i++ {
		if folded[i] < 'a' || folded[i] > 'z' {
			return "", false
		}
	}
	return folded, true
}

// LetterProfile sums letter occurrences weighted by word frequency.
func LetterProfile(words []Word) (freq.Profile, error) {
	var p freq.Profile
	for _, w := range words {
		for i := 0; i < len(w.Text); i++ {
			if ch := w.Text[i] | 0x20; ch >= 'a' && ch <= 'z' {
				p[ch-'a'] += w.Weight
			}
		}
	}
	if err := p.Validate(); err != nil {
		return freq.Profile{}, err
	}
	return p.Normalized(), nil
}

// BuildLanguage derives a reference language for code from the wheel. The
// peak is the most frequent letter and the target IC is Σp².
func BuildLanguage(wheelPath, code, name, listType string, limit int) (freq.Language, error) {
	words, err := Words(wheelPath, code, listType, limit)
	if err != nil {
		return freq.Language{}, err
	}
	profile, err := LetterProfile(words)
	if err != nil {
		return freq.Language{}, fmt.Errorf("failed to build %s profile: %w", code, err)
	}
	if name == "" {
		name = code
	}
	lang := freq.Language{
		Code:     strings.ToLower(code),
		Name:     name,
		Profile:  profile,
		Peak:     profile.MostFrequent(),
		TargetIC: profile.ExpectedIC(),
	}
	return lang, lang.Validate()
}
