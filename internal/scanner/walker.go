package scanner

import (
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"

	"betty/internal/tracker"
	"betty/internal/ui"
)

// ==================== 类型定义 ====================

// Handler 接收遍历过程中的事件，事件按处理顺序到达
type Handler interface {
	FileStarted(path string)           // 开始扫描一个文件
	FileFailed(path string, err error) // 文件无法打开或读取
	Violation(v tracker.Violation)     // 一次违规
	FileFinished(result FileResult)    // 文件扫描结束
}

// NopHandler 忽略所有事件
type NopHandler struct{}

func (NopHandler) FileStarted(string)          {}
func (NopHandler) FileFailed(string, error)    {}
func (NopHandler) Violation(tracker.Violation) {}
func (NopHandler) FileFinished(FileResult)     {}

// FileResult 单个文件的扫描结果
type FileResult struct {
	Path            string              `json:"path"`
	Checked         bool                `json:"checked"`          // 是否启用了检查（.c 文件）
	Lines           int                 `json:"lines"`            // 总行数
	Functions       int                 `json:"functions"`        // 顶层函数个数
	LongestFunction int                 `json:"longest_function"` // 最长函数的行数
	MaxDepth        int                 `json:"max_depth"`        // 最大括号深度
	Violations      []tracker.Violation `json:"violations"`
}

// Mark 该文件贡献的违规数
func (r FileResult) Mark() int {
	return len(r.Violations)
}

// Failure 无法扫描的文件
type Failure struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// RunResult 一次运行的累计结果
// Mark 由各文件结果累加得到，只增不减
type RunResult struct {
	Files  []FileResult `json:"files"`
	Failed []Failure    `json:"failed"`
	Mark   int          `json:"mark"`
}

// Violations 按处理顺序返回所有违规
func (r RunResult) Violations() []tracker.Violation {
	var out []tracker.Violation
	for _, f := range r.Files {
		out = append(out, f.Violations...)
	}
	return out
}

// ==================== 文件扫描 ====================

// ScanFile 扫描一个已打开的文件
// 每个文件使用全新的跟踪状态；opts.Enabled 由调用方按文件后缀决定
func ScanFile(path string, r io.Reader, opts tracker.Options, h Handler) (FileResult, error) {
	if h == nil {
		h = NopHandler{}
	}
	result := FileResult{Path: path, Checked: opts.Enabled}
	tr := tracker.New(path, opts)

	record := func(vs []tracker.Violation) {
		for _, v := range vs {
			result.Violations = append(result.Violations, v)
			h.Violation(v)
		}
	}

	lr := NewLineReader(r)
	for lr.Scan() {
		record(tr.Feed(lr.Text()))

		st := tr.State()
		if st.ScopeDepth > result.MaxDepth {
			result.MaxDepth = st.ScopeDepth
		}
		if st.ScopeDepth >= 1 && st.FunctionLineCount > result.LongestFunction {
			result.LongestFunction = st.FunctionLineCount
		}
	}
	if err := lr.Err(); err != nil {
		return result, fmt.Errorf("read %s: %w", path, err)
	}
	record(tr.Finish())

	result.Lines = lr.LineNum
	result.Functions = tr.State().FunctionCount
	return result, nil
}

// ==================== 遍历器 ====================

// Walker 按顺序扫描一组文件
type Walker struct {
	Options  tracker.Options // 跟踪选项模板，Enabled 按文件后缀覆盖
	Handler  Handler         // 事件接收者，nil 时忽略事件
	Progress bool            // 是否在 stderr 显示进度条
}

// Run 扫描所有文件并返回累计结果
// 打开失败的文件统一报告并跳过，不会中止本次运行
func (w *Walker) Run(paths []string) RunResult {
	h := w.Handler
	if h == nil {
		h = NopHandler{}
	}

	var result RunResult
	bar := ui.NewProgressBar(len(paths), "scanning", w.Progress)
	for _, path := range paths {
		fr, err := w.scanPath(path, h)
		bar.Add(1)
		if err != nil {
			glog.Warningf("cannot scan %s: %v", path, err)
			result.Failed = append(result.Failed, Failure{Path: path, Err: err.Error()})
			h.FileFailed(path, err)
			continue
		}
		result.Files = append(result.Files, fr)
		result.Mark += fr.Mark()
		h.FileFinished(fr)
	}
	bar.Finish()

	glog.V(1).Infof("scanned %d files, %d failed, mark %d", len(result.Files), len(result.Failed), result.Mark)
	return result
}

// scanPath 打开并扫描一个文件，文件总会被关闭
func (w *Walker) scanPath(path string, h Handler) (FileResult, error) {
	h.FileStarted(path)
	f, err := os.Open(path)
	if err != nil {
		return FileResult{}, err
	}
	defer f.Close()

	opts := w.Options
	opts.Enabled = IsChecked(path)
	return ScanFile(path, f, opts, h)
}
