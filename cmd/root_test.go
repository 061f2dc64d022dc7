package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"betty/internal/config"
	"betty/internal/storage"
	"betty/internal/ui"
)

func init() {
	ui.SetColor(false)
}

// longFunction 返回一个 body 有 n 行的函数
func longFunction(n int) string {
	return "int main(void)\n{\n" + strings.Repeat("\treturn;\n", n) + "}\n"
}

func TestCheckReport(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.c")
	bad := filepath.Join(dir, "bad.c")
	header := filepath.Join(dir, "bad.h")
	for path, content := range map[string]string{
		good:   longFunction(25),
		bad:    longFunction(26),
		header: longFunction(40),
	} {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg := config.Default()
	cfg.Verbose = true
	var buf bytes.Buffer
	result, err := check(cfg, []string{good, "notes.txt", header, bad, filepath.Join(dir, "gone.c")}, &buf)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Mark != 1 {
		t.Errorf("unexpected mark. got: %d. expected: 1.", result.Mark)
	}

	expected := strings.Join([]string{
		"Scan " + good,
		"Scan " + header,
		"Scan " + bad,
		"Error in " + bad + " in line 28 : more than 25 lines in function",
		"\treturn;",
		"Scan " + filepath.Join(dir, "gone.c"),
		"Can't open file " + filepath.Join(dir, "gone.c"),
		"Mark: -1",
		"You have corrections to make.",
		"",
	}, "\n")
	if got := buf.String(); got != expected {
		t.Errorf("unexpected output.\ngot:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestCheckNoMatchingFiles(t *testing.T) {
	var buf bytes.Buffer
	result, err := check(config.Default(), []string{"README", "main.cpp"}, &buf)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Mark != 0 || len(result.Files) != 0 {
		t.Errorf("unexpected result: %+v", result)
	}
	if !strings.HasPrefix(buf.String(), "Mark: 0\n") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestCheckRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.c")
	if err := os.WriteFile(src, []byte(longFunction(27)), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.History = filepath.Join(dir, "history.db")

	var buf bytes.Buffer
	if _, err := check(cfg, []string{src}, &buf); err != nil {
		t.Fatalf("check: %v", err)
	}

	db, err := storage.NewDatabase(cfg.History)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	defer db.Close()
	runs, err := db.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Mark != 2 || runs[0].Violations != 2 {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestPrintHelp(t *testing.T) {
	var buf bytes.Buffer
	printHelp(&buf)
	expected := "Help\nBetty version " + config.Version + "\n" + config.Usage + "\n"
	if buf.String() != expected {
		t.Errorf("unexpected help. got: %q. expected: %q.", buf.String(), expected)
	}
}

func TestTrackerOptions(t *testing.T) {
	cfg := config.Default()
	cfg.CheckColumns = false
	cfg.StrictBraces = true
	opts := trackerOptions(cfg)
	if opts.CheckColumns || !opts.StrictBraces {
		t.Errorf("unexpected options: %+v", opts)
	}
}
