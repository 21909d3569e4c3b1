package wordfreq

import (
	"archive/zip"
	"fmt"
	"sort"
	"strings"
)

const dataPrefix = "wordfreq/data/"

// List sizes published by wordfreq.
const (
	ListLarge = "large"
	ListSmall = "small"
)

// LanguageTypes maps language codes to available list types.
type LanguageTypes map[string]map[string]struct{}

// ListLanguageTypes returns available languages and list types in the wheel.
func ListLanguageTypes(wheelPath string) (LanguageTypes, error) {
	if wheelPath == "" {
		return nil, fmt.Errorf("wheel path is required")
	}
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	langs := make(LanguageTypes)
	for _, file := range reader.File {
		lang, listType, ok := parseDataName(file.Name)
		if !ok {
			continue
		}
		if langs[lang] == nil {
			langs[lang] = make(map[string]struct{})
		}
		langs[lang][listType] = struct{}{}
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	return langs, nil
}

// Languages returns sorted language codes.
func (t LanguageTypes) Languages() []string {
	out := make([]string, 0, len(t))
	for lang := range t {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Best returns the largest list type available for lang.
func (t LanguageTypes) Best(lang string) (string, bool) {
	types := t[strings.ToLower(lang)]
	for _, listType := range []string{ListLarge, ListSmall} {
		if _, ok := types[listType]; ok {
			return listType, true
		}
	}
	return "", false
}

// parseDataName recognises "wordfreq/data/<type>_<lang>.msgpack[.gz]".
func parseDataName(name string) (lang, listType string, ok bool) {
	name = strings.ToLower(name)
	base, found := strings.CutPrefix(name, dataPrefix)
	if !found {
		return "", "", false
	}
	base = strings.TrimSuffix(base, ".gz")
	base, found = strings.CutSuffix(base, ".msgpack")
	if !found {
		return "", "", false
	}
	for _, listType := range []string{ListLarge, ListSmall} {
		if lang, found := strings.CutPrefix(base, listType+"_"); found && lang != "" {
			return lang, listType, true
		}
	}
	return "", "", false
}

func findDataFile(files []*zip.File, lang, listType string) *zip.File {
	lang = strings.ToLower(lang)
	for _, file := range files {
		l, t, ok := parseDataName(file.Name)
		if ok && l == lang && t == listType {
			return file
		}
	}
	return nil
}
