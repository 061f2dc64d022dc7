// Package report 报告输出模块
// 把遍历事件渲染为文本或 JSON，并在运行结束时输出分数和结论
//
// Copyright (c) 2024-2026 lynx-lee

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/text/message"

	"betty/internal/config"
	"betty/internal/i18n"
	"betty/internal/scanner"
	"betty/internal/tracker"
	"betty/internal/ui"
)

// Reporter 报告器
// 作为 scanner.Handler 接收事件，Summary 在全部文件处理后调用一次
type Reporter interface {
	scanner.Handler
	Summary(result scanner.RunResult) error
}

// New 按输出格式创建报告器
func New(format string, w io.Writer, verbose bool, p *message.Printer) Reporter {
	if format == config.FormatJSON {
		return &JSONReporter{w: w, p: p}
	}
	return &TextReporter{w: w, verbose: verbose, p: p}
}

// Score 显示分数：违规数取负，没有违规时为 0
func Score(mark int) int {
	return -mark
}

// ==================== 文本格式 ====================

// TextReporter 逐行输出事件
type TextReporter struct {
	w       io.Writer
	verbose bool
	p       *message.Printer
}

// FileStarted 详细模式下打印扫描提示
func (r *TextReporter) FileStarted(path string) {
	if r.verbose {
		fmt.Fprintln(r.w, ui.Gray(r.p.Sprintf(i18n.ScanFile, path)))
	}
}

// FileFailed 每个打开失败的文件都报告
func (r *TextReporter) FileFailed(path string, err error) {
	fmt.Fprintln(r.w, ui.Yellow(r.p.Sprintf(i18n.CantOpen, path)))
}

// Violation 打印错误行，紧接着打印违规行原文
func (r *TextReporter) Violation(v tracker.Violation) {
	fmt.Fprintf(r.w, "%s in %s in line %d : %s\n", ui.BoldRed("Error"), v.File, v.Line, v.Message)
	fmt.Fprintln(r.w, tracker.TrimEOL(v.Text))
}

func (r *TextReporter) FileFinished(scanner.FileResult) {}

// Summary 打印分数和结论
func (r *TextReporter) Summary(result scanner.RunResult) error {
	if _, err := fmt.Fprintf(r.w, "Mark: %d\n", Score(result.Mark)); err != nil {
		return err
	}
	verdict := i18n.Verdict(r.p, result.Mark)
	if result.Mark == 0 {
		verdict = ui.Green(verdict)
	}
	_, err := fmt.Fprintln(r.w, verdict)
	return err
}

// ==================== JSON 格式 ====================

// JSONReporter 运行结束时输出一个 JSON 文档
type JSONReporter struct {
	w io.Writer
	p *message.Printer
}

// Document JSON 报告结构
type Document struct {
	Mark       int                  `json:"mark"`
	Score      int                  `json:"score"`
	Verdict    string               `json:"verdict"`
	Files      []scanner.FileResult `json:"files"`
	Failed     []scanner.Failure    `json:"failed"`
	Violations []tracker.Violation  `json:"violations"`
}

func (r *JSONReporter) FileStarted(string)              {}
func (r *JSONReporter) FileFailed(string, error)        {}
func (r *JSONReporter) Violation(tracker.Violation)     {}
func (r *JSONReporter) FileFinished(scanner.FileResult) {}

// Summary 输出完整结果
func (r *JSONReporter) Summary(result scanner.RunResult) error {
	doc := Document{
		Mark:       result.Mark,
		Score:      Score(result.Mark),
		Verdict:    i18n.Verdict(r.p, result.Mark),
		Files:      result.Files,
		Failed:     result.Failed,
		Violations: result.Violations(),
	}
	if doc.Files == nil {
		doc.Files = []scanner.FileResult{}
	}
	if doc.Failed == nil {
		doc.Failed = []scanner.Failure{}
	}
	if doc.Violations == nil {
		doc.Violations = []tracker.Violation{}
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
