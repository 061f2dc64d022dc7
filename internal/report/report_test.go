package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"betty/internal/config"
	"betty/internal/i18n"
	"betty/internal/scanner"
	"betty/internal/tracker"
	"betty/internal/ui"
)

func init() {
	ui.SetColor(false)
}

func TestTextReporter(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.FormatText, &buf, true, i18n.GetPrinter("en"))

	v := tracker.Violation{File: "a.c", Line: 28, Kind: tracker.TooManyLinesInFunction, Message: "more than 25 lines in function", Text: "\tx++;\n"}
	r.FileStarted("missing.c")
	r.FileFailed("missing.c", errors.New("no such file"))
	r.FileStarted("a.c")
	r.Violation(v)
	r.FileFinished(scanner.FileResult{Path: "a.c", Violations: []tracker.Violation{v}})
	if err := r.Summary(scanner.RunResult{Mark: 1}); err != nil {
		t.Fatalf("Summary: %v", err)
	}

	expected := strings.Join([]string{
		"Scan missing.c",
		"Can't open file missing.c",
		"Scan a.c",
		"Error in a.c in line 28 : more than 25 lines in function",
		"\tx++;",
		"Mark: -1",
		"You have corrections to make.",
		"",
	}, "\n")
	if got := buf.String(); got != expected {
		t.Errorf("unexpected output.\ngot:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestTextReporterQuietZeroMark(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.FormatText, &buf, false, i18n.GetPrinter("en"))
	r.FileStarted("ok.c")
	if err := r.Summary(scanner.RunResult{}); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	expected := "Mark: 0\n" + i18n.NoViolations + "\n"
	if got := buf.String(); got != expected {
		t.Errorf("unexpected output. got: %q. expected: %q.", got, expected)
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.FormatJSON, &buf, true, i18n.GetPrinter("en"))
	v := tracker.Violation{File: "a.c", Line: 7, Kind: tracker.LineTooLong, Message: "more than 80 columns in line", Text: "x\n"}
	r.Violation(v)
	result := scanner.RunResult{
		Files:  []scanner.FileResult{{Path: "a.c", Checked: true, Violations: []tracker.Violation{v}}},
		Failed: []scanner.Failure{{Path: "b.c", Err: "missing"}},
		Mark:   1,
	}
	if err := r.Summary(result); err != nil {
		t.Fatalf("Summary: %v", err)
	}

	var doc struct {
		Mark       int    `json:"mark"`
		Score      int    `json:"score"`
		Verdict    string `json:"verdict"`
		Violations []struct {
			File string `json:"file"`
			Line int    `json:"line"`
			Kind string `json:"kind"`
		} `json:"violations"`
		Failed []scanner.Failure `json:"failed"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if doc.Mark != 1 || doc.Score != -1 || doc.Verdict != i18n.Corrections {
		t.Errorf("unexpected summary: %+v", doc)
	}
	if len(doc.Violations) != 1 || doc.Violations[0].Kind != "line-too-long" || doc.Violations[0].Line != 7 {
		t.Errorf("unexpected violations: %+v", doc.Violations)
	}
	if len(doc.Failed) != 1 || doc.Failed[0].Path != "b.c" {
		t.Errorf("unexpected failures: %+v", doc.Failed)
	}
}

func TestJSONReporterEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	r := New(config.FormatJSON, &buf, false, i18n.GetPrinter("en"))
	if err := r.Summary(scanner.RunResult{}); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !strings.Contains(buf.String(), `"violations": []`) {
		t.Errorf("empty violations should encode as []: %s", buf.String())
	}
}
