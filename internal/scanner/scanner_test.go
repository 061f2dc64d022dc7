package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"betty/internal/tracker"
)

// cSource 生成含 n 个函数的 C 源码，每个函数 body 有 bodyLines 行
func cSource(n, bodyLines int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "int f%d(void)\n{\n", i)
		for j := 0; j < bodyLines; j++ {
			sb.WriteString("\tx++;\n")
		}
		sb.WriteString("}\n\n")
	}
	return sb.String()
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExpandFiltersExtensions(t *testing.T) {
	args := []string{"a.c", "b.h", "c.cpp", "README", "d.C", "e.H", "dir/f.c", "-x"}
	got, err := Expand(args, ExpandOptions{})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	expected := []string{"a.c", "b.h", "dir/f.c"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", got, expected)
	}
}

func TestExpandRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.c":             "",
		"util.h":             "",
		"notes.txt":          "",
		"sub/b.c":            "",
		"sub/a.c":            "",
		".hidden/x.c":        "",
		"node_modules/y.c":   "",
		"vendor/lib/z.c":     "",
		"sub/deeper/tool.cc": "",
	})

	for _, testCase := range [...]struct {
		name     string
		opts     ExpandOptions
		expected []string
	}{
		{
			name:     "not recursive",
			opts:     ExpandOptions{},
			expected: nil,
		},
		{
			name: "recursive",
			opts: ExpandOptions{Recursive: true},
			expected: []string{
				filepath.Join(dir, "main.c"),
				filepath.Join(dir, "sub/a.c"),
				filepath.Join(dir, "sub/b.c"),
				filepath.Join(dir, "util.h"),
				filepath.Join(dir, "vendor/lib/z.c"),
			},
		},
		{
			name: "exclude",
			opts: ExpandOptions{Recursive: true, Exclude: []string{"**/vendor/**", "**/*.h"}},
			expected: []string{
				filepath.Join(dir, "main.c"),
				filepath.Join(dir, "sub/a.c"),
				filepath.Join(dir, "sub/b.c"),
			},
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := Expand([]string{dir}, testCase.opts)
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if !reflect.DeepEqual(got, testCase.expected) {
				t.Errorf("unexpected result. got: %v. expected: %v.", got, testCase.expected)
			}
		})
	}
}

func TestExpandExcludeFileArgs(t *testing.T) {
	got, err := Expand([]string{"src/a.c", "test/b.c"}, ExpandOptions{Exclude: []string{"test/*"}})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if expected := []string{"src/a.c"}; !reflect.DeepEqual(got, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", got, expected)
	}
}

func TestExpandMalformedPattern(t *testing.T) {
	if _, err := Expand([]string{"a.c"}, ExpandOptions{Exclude: []string{"[a-"}}); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestLineReader(t *testing.T) {
	long := strings.Repeat("a", 100000)
	lr := NewLineReader(strings.NewReader("one\n\n" + long + "\nlast"))
	var lines []string
	for lr.Scan() {
		lines = append(lines, lr.Text())
	}
	if err := lr.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	expected := []string{"one\n", "\n", long + "\n", "last"}
	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("unexpected lines: %d lines", len(lines))
	}
	if lr.LineNum != 4 {
		t.Errorf("unexpected line number. got: %d. expected: 4.", lr.LineNum)
	}
}

func TestScanFileCollectsStructure(t *testing.T) {
	src := cSource(2, 3) + "int g(void)\n{\n{\n\ty;\n}\n}\n"
	fr, err := ScanFile("s.c", strings.NewReader(src), tracker.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if fr.Functions != 3 || fr.LongestFunction != 3 || fr.MaxDepth != 2 || fr.Mark() != 0 {
		t.Errorf("unexpected result: %+v", fr)
	}
	if fr.Lines != strings.Count(src, "\n") {
		t.Errorf("unexpected line count. got: %d. expected: %d.", fr.Lines, strings.Count(src, "\n"))
	}
}
