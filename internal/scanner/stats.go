package scanner

import (
	"os"

	"github.com/golang/glog"
	"github.com/hhatto/gocloc"

	"betty/internal/tracker"
	"betty/internal/ui"
)

// ==================== 统计相关类型 ====================

// FileStats 单个文件的统计信息
type FileStats struct {
	FileResult
	Size     int64 // 文件大小（字节）
	Code     int   // 代码行数（gocloc）
	Comments int   // 注释行数
	Blanks   int   // 空行数
}

// Statistics 文件列表的汇总统计
type Statistics struct {
	Files      []FileStats
	Failed     []Failure
	TotalLines int
	TotalCode  int
	TotalSize  int64
	Mark       int
}

// clocLanguages 参与行数统计的 gocloc 语言
var clocLanguages = []string{"C", "C Header"}

// ==================== 统计函数 ====================

// GetStatistics 统计文件列表
// 结构信息来自作用域跟踪，代码/注释/空行来自 gocloc
func GetStatistics(paths []string, opts tracker.Options) Statistics {
	var stats Statistics
	w := &Walker{Options: opts}
	run := w.Run(paths)
	stats.Failed = run.Failed
	stats.Mark = run.Mark

	cloc := countLines(run.Files)
	for _, fr := range run.Files {
		fs := FileStats{FileResult: fr}
		if info, err := os.Stat(fr.Path); err == nil {
			fs.Size = info.Size()
		}
		if cf, ok := cloc[fr.Path]; ok {
			fs.Code = int(cf.Code)
			fs.Comments = int(cf.Comments)
			fs.Blanks = int(cf.Blanks)
		}
		stats.TotalLines += fr.Lines
		stats.TotalCode += fs.Code
		stats.TotalSize += fs.Size
		stats.Files = append(stats.Files, fs)
	}
	return stats
}

// countLines 用 gocloc 统计代码、注释和空行
// 统计失败只记录日志，结构统计仍然可用
func countLines(files []FileResult) map[string]*gocloc.ClocFile {
	out := make(map[string]*gocloc.ClocFile)
	if len(files) == 0 {
		return out
	}
	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}

	clocOpts := gocloc.NewClocOptions()
	languages := gocloc.NewDefinedLanguages()
	for _, lang := range clocLanguages {
		if _, exists := languages.Langs[lang]; exists {
			clocOpts.IncludeLangs[lang] = struct{}{}
		}
	}
	processor := gocloc.NewProcessor(languages, clocOpts)
	result, err := processor.Analyze(paths)
	if err != nil {
		glog.Errorf("gocloc fail: %v", err)
		return out
	}
	for name, file := range result.Files {
		out[name] = file
	}
	return out
}

// PrintStatistics 打印统计信息
func PrintStatistics(stats Statistics) {
	ui.Title("📊", "File statistics")
	ui.Divider()

	for _, f := range stats.Files {
		state := ui.Green("checked")
		if !f.Checked {
			state = ui.Gray("header")
		}
		ui.Info("%s  %s", ui.Bold(f.Path), state)
		ui.Info("  lines %5d   code %5d   comments %5d   blanks %5d   %s",
			f.Lines, f.Code, f.Comments, f.Blanks, ui.FormatSize(f.Size))
		ui.Info("  functions %d   longest %d lines   max depth %d   violations %d",
			f.Functions, f.LongestFunction, f.MaxDepth, f.Mark())
	}
	for _, f := range stats.Failed {
		ui.Error("Can't open file %s", f.Path)
	}

	ui.Divider()
	ui.Info("📄 files:  %d", len(stats.Files))
	ui.Info("📏 lines:  %d (%d code)", stats.TotalLines, stats.TotalCode)
	ui.Info("💾 size:   %s", ui.FormatSize(stats.TotalSize))
	ui.Info("🏷  mark:   %d", -stats.Mark)
}
