package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/chiffre/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Analysis.Lang != nil || len(cfg.Profiles) != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigMergesAnalysisSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[analysis]
lang = "en"
kasiski-max = 12
target-ic = 0.07
history = false

[profiles.xx]
name = "Test"
freq = { A = 2, B = 1, C = 1 }
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	fileCfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := fileCfg.Analysis.Merge(model.DefaultConfig())
	if cfg.Lang != "en" || cfg.KasiskiMax != 12 || cfg.TargetIC != 0.07 || cfg.History {
		t.Fatalf("unexpected merge: %+v", cfg)
	}
	if cfg.KasiskiMin != 3 || cfg.MaxKeyLength != 20 || cfg.Alternatives != 3 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("validate: %v", err)
	}

	langs, err := Languages(fileCfg, filepath.Join(t.TempDir(), "profiles"))
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	xx, ok := langs["xx"]
	if !ok {
		t.Fatalf("inline profile missing: %v", langs)
	}
	if xx.Name != "Test" || xx.Peak != 'A' {
		t.Fatalf("unexpected profile: %+v", xx)
	}
}

func TestLoadConfigRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[analysis\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLanguagesRejectsBadInlineProfile(t *testing.T) {
	fileCfg := FileConfig{}
	if _, err := toml.Decode("[profiles.zz]\nfreq = { A = -1 }\n", &fileCfg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := Languages(fileCfg, t.TempDir()); err == nil {
		t.Fatalf("expected invalid profile error")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(model.DefaultConfig()); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	cases := map[string]func(*model.Config){
		"lang":         func(c *model.Config) { c.Lang = "" },
		"kasiski-min":  func(c *model.Config) { c.KasiskiMin = 0 },
		"kasiski-max":  func(c *model.Config) { c.KasiskiMax = 2 },
		"max-key":      func(c *model.Config) { c.MaxKeyLength = 0 },
		"target-ic":    func(c *model.Config) { c.TargetIC = 1.2 },
		"alternatives": func(c *model.Config) { c.Alternatives = 26 },
		"fallback":     func(c *model.Config) { c.FallbackMax = 1 },
	}
	for name, mutate := range cases {
		cfg := model.DefaultConfig()
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestWriteSettingsRoundTrip(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Lang = "en"
	cfg.KasiskiMax = 12
	cfg.FoldAccents = true
	cfg.History = false

	var buf bytes.Buffer
	if err := WriteSettings(&buf, cfg); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.Contains(buf.String(), "target-ic") {
		t.Fatalf("zero target IC should be left out:\n%s", buf.String())
	}
	var decoded FileConfig
	if _, err := toml.Decode(buf.String(), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if got := decoded.Analysis.Merge(model.Config{}); got != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}

	cfg.TargetIC = 0.07
	buf.Reset()
	if err := WriteSettings(&buf, cfg); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(buf.String(), "target-ic = 0.07") {
		t.Fatalf("expected target IC:\n%s", buf.String())
	}
}

func TestTemplateDecodes(t *testing.T) {
	var cfg FileConfig
	if _, err := toml.Decode(DefaultTemplate(), &cfg); err != nil {
		t.Fatalf("template does not decode: %v", err)
	}
	if !strings.Contains(DefaultTemplate(), "[analysis]") {
		t.Fatalf("template missing analysis section")
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "chiffre", "config.toml") {
		t.Fatalf("config path: %s", got)
	}
	if got := DefaultProfilePath("de"); got != filepath.Join("/cfg", "chiffre", "profiles", "de.toml") {
		t.Fatalf("profile path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "chiffre", "chiffre.db") {
		t.Fatalf("db path: %s", got)
	}
}
