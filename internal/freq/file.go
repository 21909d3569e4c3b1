package freq

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ProfileTable is the TOML form of a Language, used both inline in config.toml
// ([profiles.<code>]) and in standalone profile files.
type ProfileTable struct {
	Name     string             `toml:"name"`
	Peak     string             `toml:"peak,omitempty"`
	TargetIC float64            `toml:"target-ic,omitempty"`
	Freq     map[string]float64 `toml:"freq"`
}

// Language converts the table into a validated Language. The profile is
// renormalised; a missing peak or target IC is derived from the profile.
func (s ProfileTable) Language(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return Language{}, fmt.Errorf("profile code is empty")
	}
	var p Profile
	for key, v := range s.Freq {
		key = strings.ToUpper(strings.TrimSpace(key))
		if len(key) != 1 || key[0] < 'A' || key[0] > 'Z' {
			return Language{}, fmt.Errorf("profile %q: invalid letter %q", code, key)
		}
		p[key[0]-'A'] = v
	}
	if err := p.Validate(); err != nil {
		return Language{}, fmt.Errorf("profile %q: %w", code, err)
	}
	p = p.Normalized()

	lang := Language{Code: code, Name: s.Name, Profile: p, TargetIC: s.TargetIC}
	if lang.Name == "" {
		lang.Name = code
	}
	switch peak := strings.ToUpper(strings.TrimSpace(s.Peak)); {
	case peak == "":
		lang.Peak = p.MostFrequent()
	case len(peak) == 1 && peak[0] >= 'A' && peak[0] <= 'Z':
		lang.Peak = peak[0]
	default:
		return Language{}, fmt.Errorf("profile %q: invalid peak %q", code, s.Peak)
	}
	if lang.TargetIC == 0 {
		lang.TargetIC = p.ExpectedIC()
	}
	if err := lang.Validate(); err != nil {
		return Language{}, err
	}
	return lang, nil
}

// TableFor renders a Language as a ProfileTable.
func TableFor(lang Language) ProfileTable {
	tbl := ProfileTable{
		Name:     lang.Name,
		Peak:     string(lang.Peak),
		TargetIC: lang.TargetIC,
		Freq:     make(map[string]float64, AlphabetSize),
	}
	for i, v := range lang.Profile {
		tbl.Freq[string(rune('A'+i))] = v
	}
	return tbl
}

// LoadFile reads one profile file. The language code is the file name
// without its .toml extension.
func LoadFile(path string) (Language, error) {
	var tbl ProfileTable
	if _, err := toml.DecodeFile(path, &tbl); err != nil {
		return Language{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	code := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return tbl.Language(code)
}

// LoadDir reads every *.toml profile in dir. A missing directory is not an error.
func LoadDir(dir string) (map[string]Language, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Language{}, nil
		}
		return nil, fmt.Errorf("failed to read profile directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	out := make(map[string]Language, len(names))
	for _, name := range names {
		lang, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[lang.Code] = lang
	}
	return out, nil
}

// WriteFile stores lang as a TOML profile file, replacing any existing one.
func WriteFile(path string, lang Language) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create profile dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "profile-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temp profile: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := toml.NewEncoder(tmpFile).Encode(TableFor(lang)); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close profile: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}
