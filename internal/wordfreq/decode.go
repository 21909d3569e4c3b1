package wordfreq

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Word is one dataset entry with its relative frequency.
type Word struct {
	Text   string
	Weight float64
}

// readWords decodes the frequency list of lang from the wheel.
func readWords(wheelPath, lang, listType string) ([]Word, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	file := findDataFile(reader.File, lang, listType)
	if file == nil {
		return nil, fmt.Errorf("no data file found for %s/%s", lang, listType)
	}
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(file.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}
	words, err := decodeBins(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", file.Name, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("wordfreq data contained no entries")
	}
	return words, nil
}

// decodeBins reads the cBpack layout: a header map followed by one array of
// words per centibel bin, bin i holding words of frequency 10^(-i/100).
func decodeBins(r io.Reader) ([]Word, error) {
	raw, err := msgpack.NewDecoder(r).DecodeInterfaceLoose()
	if err != nil {
		return nil, err
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unsupported msgpack root type %T", raw)
	}
	if len(items) > 0 {
		switch header := items[0].(type) {
		case map[string]interface{}:
			if err := checkFormat(header["format"]); err != nil {
				return nil, err
			}
			items = items[1:]
		case map[interface{}]interface{}:
			if err := checkFormat(header["format"]); err != nil {
				return nil, err
			}
			items = items[1:]
		}
	}

	var words []Word
	for bin, item := range items {
		list, ok := item.([]interface{})
		if !ok {
			return nil, fmt.Errorf("bin %d: unexpected %T", bin, item)
		}
		weight := math.Pow(10, -float64(bin)/100)
		for _, entry := range list {
			text, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("bin %d: unexpected word %T", bin, entry)
			}
			words = append(words, Word{Text: text, Weight: weight})
		}
	}
	return words, nil
}

func checkFormat(v interface{}) error {
	if format, _ := v.(string); format != "" && format != "cB" {
		return fmt.Errorf("unsupported wordfreq format %q", format)
	}
	return nil
}
