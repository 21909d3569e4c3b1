package freq

import (
	"fmt"
	"sort"
	"strings"
)

// Language is a reference model: the expected letter frequencies of a
// natural language plus the constants the analyzers derive from it.
type Language struct {
	Code     string
	Name     string
	Profile  Profile
	Peak     byte
	TargetIC float64
}

// French letter frequencies.
var french = Profile{
	0.0842, 0.0106, 0.0334, 0.0366, 0.1715, 0.0106, 0.0097, // A-G
	0.0077, 0.0753, 0.0054, 0.0012, 0.0577, 0.0297, 0.0713, // H-N
	0.0531, 0.0295, 0.0136, 0.0662, 0.0795, 0.0722, 0.0632, // O-U
	0.0152, 0.0001, 0.0046, 0.0030, 0.0013, // V-Z
}

// English letter frequencies.
var english = Profile{
	0.08167, 0.01492, 0.02782, 0.04253, 0.12702, 0.02228, 0.02015, // A-G
	0.06094, 0.06966, 0.00153, 0.00772, 0.04025, 0.02406, 0.06749, // H-N
	0.07507, 0.01929, 0.00095, 0.05987, 0.06327, 0.09056, 0.02758, // O-U
	0.00978, 0.02360, 0.00150, 0.01974, 0.00074, // V-Z
}

// Builtin returns the languages shipped with the binary, keyed by code.
func Builtin() map[string]Language {
	return map[string]Language{
		"fr": {Code: "fr", Name: "French", Profile: french.Normalized(), Peak: 'E', TargetIC: 0.074},
		"en": {Code: "en", Name: "English", Profile: english.Normalized(), Peak: 'E', TargetIC: 0.0667},
	}
}

// DefaultLanguage is used when nothing else is configured.
const DefaultLanguage = "fr"

// Lookup resolves code against extra first, then the built-in languages.
func Lookup(code string, extra map[string]Language) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		code = DefaultLanguage
	}
	if lang, ok := extra[code]; ok {
		return lang, nil
	}
	if lang, ok := Builtin()[code]; ok {
		return lang, nil
	}
	return Language{}, fmt.Errorf("unknown language %q (available: %s)", code, strings.Join(Codes(extra), ", "))
}

// Codes lists every known language code, sorted.
func Codes(extra map[string]Language) []string {
	seen := map[string]struct{}{}
	for code := range Builtin() {
		seen[code] = struct{}{}
	}
	for code := range extra {
		seen[code] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// Validate checks the profile and the derived constants.
func (l Language) Validate() error {
	if err := l.Profile.Validate(); err != nil {
		return fmt.Errorf("language %q: %w", l.Code, err)
	}
	if l.Peak < 'A' || l.Peak > 'Z' {
		return fmt.Errorf("language %q: peak letter must be A-Z", l.Code)
	}
	if l.TargetIC <= 0 || l.TargetIC > 1 {
		return fmt.Errorf("language %q: target IC must be in (0, 1], got %g", l.Code, l.TargetIC)
	}
	return nil
}
