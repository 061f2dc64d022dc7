package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeFile(t, "betty.yaml", "verbose: true\nexclude:\n  - \"vendor/**\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	expected := Default()
	expected.Verbose = true
	expected.Exclude = []string{"vendor/**"}
	if !reflect.DeepEqual(cfg, expected) {
		t.Errorf("unexpected config. got: %+v. expected: %+v.", cfg, expected)
	}
}

func TestLoadErrors(t *testing.T) {
	for _, testCase := range [...]struct {
		name    string
		content string
		errPart string
	}{
		{name: "unknown field", content: "max_lines: 30\n", errPart: "decode config"},
		{name: "bad format", content: "format: xml\n", errPart: "invalid format"},
		{name: "bad lang", content: "lang: fr\n", errPart: "invalid lang"},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "betty.yaml", testCase.content))
			if err == nil || !strings.Contains(err.Error(), testCase.errPart) {
				t.Errorf("unexpected error. got: %v. expected to contain: %q.", err, testCase.errPart)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "betty.yaml")
	cfg := Default()
	cfg.StrictBraces = true
	cfg.Format = FormatJSON
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("unexpected config. got: %+v. expected: %+v.", loaded, cfg)
	}
}
