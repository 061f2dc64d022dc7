// Package tracker 作用域跟踪模块
// 逐行消费源文件，跟踪括号深度，统计函数个数、函数行数和行宽，产生违规事件
// 纯状态机，不做任何 I/O
//
// Copyright (c) 2024-2026 lynx-lee

package tracker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"betty/internal/classifier"
)

// ==================== 阈值常量 ====================

const (
	MaxFunctions     = 5  // 每个文件最多函数数
	MaxFunctionLines = 25 // 每个函数最多行数
	MaxColumns       = 80 // 每行最多列数
	TabWidth         = 4  // 制表符展开宽度
)

// ==================== 类型定义 ====================

// ScanState 单个文件的扫描状态
// 每个文件新建一份，文件扫描结束后丢弃
type ScanState struct {
	LineNumber        int // 当前行号，从 1 开始，处理完一行后加一
	ScopeDepth        int // 未匹配的 '{' 个数
	FunctionLineCount int // 当前顶层函数体内已见的行数
	FunctionCount     int // 深度从 0 变为 1 的次数
}

// NewScanState 创建初始状态
func NewScanState() ScanState {
	return ScanState{LineNumber: 1}
}

// Options 跟踪选项
type Options struct {
	Enabled      bool                  // 是否启用检查（只有 .c 文件启用）
	CheckColumns bool                  // 是否检查行宽
	StrictBraces bool                  // 文件结束时括号不平衡是否计为违规
	Classifier   classifier.Classifier // 行分类器，nil 时使用默认的行首分类
}

// DefaultOptions 默认选项：启用全部检查，容忍括号不平衡
func DefaultOptions() Options {
	return Options{Enabled: true, CheckColumns: true}
}

// Tracker 作用域跟踪器
type Tracker struct {
	file         string
	opts         Options
	state        ScanState
	strayClosers int // 深度为 0 时遇到的 '}' 个数
	lastLine     string
}

// New 为一个文件创建跟踪器
func New(file string, opts Options) *Tracker {
	if opts.Classifier == nil {
		opts.Classifier = classifier.Default
	}
	return &Tracker{
		file:  file,
		opts:  opts,
		state: NewScanState(),
	}
}

// State 返回当前状态的副本
func (t *Tracker) State() ScanState {
	return t.state
}

// Feed 处理一行（包含行尾换行符），返回本行产生的违规
// 必须按文件顺序对每一行调用一次
func (t *Tracker) Feed(line string) []Violation {
	var out []Violation
	kind := t.opts.Classifier.Classify(line)

	switch kind {
	case classifier.Open:
		t.state.ScopeDepth++
		if t.state.ScopeDepth == 1 {
			// 进入新的顶层函数
			t.state.FunctionLineCount = 0
			t.state.FunctionCount++
		}
		if t.state.FunctionCount > MaxFunctions && t.state.ScopeDepth == 1 {
			out = t.emit(out, TooManyFunctions, line)
		}
	case classifier.Close:
		if t.state.ScopeDepth > 0 {
			t.state.ScopeDepth--
		} else {
			t.strayClosers++
		}
	default:
		if t.state.ScopeDepth >= 1 {
			t.state.FunctionLineCount++
			if t.state.FunctionLineCount > MaxFunctionLines {
				out = t.emit(out, TooManyLinesInFunction, line)
			}
		}
	}

	if t.opts.CheckColumns && t.state.ScopeDepth >= 1 && Columns(line) > MaxColumns {
		out = t.emit(out, LineTooLong, line)
	}

	t.lastLine = line
	t.state.LineNumber++
	return out
}

// Finish 结束当前文件
// 默认容忍括号不平衡；StrictBraces 开启时，深度不为 0 或出现过多余的 '}' 则产生一条违规
func (t *Tracker) Finish() []Violation {
	if !t.opts.Enabled || !t.opts.StrictBraces {
		return nil
	}
	if t.state.ScopeDepth == 0 && t.strayClosers == 0 {
		return nil
	}
	depth := t.state.ScopeDepth - t.strayClosers
	line := t.state.LineNumber - 1
	if line < 1 {
		line = 1
	}
	return []Violation{{
		File:    t.file,
		Line:    line,
		Kind:    UnbalancedBraces,
		Message: fmt.Sprintf(UnbalancedBraces.Message(), depth),
		Text:    t.lastLine,
	}}
}

// emit 追加一条违规（检查未启用时忽略）
func (t *Tracker) emit(out []Violation, kind Kind, line string) []Violation {
	if !t.opts.Enabled {
		return out
	}
	return append(out, Violation{
		File:    t.file,
		Line:    t.state.LineNumber,
		Kind:    kind,
		Message: kind.Message(),
		Text:    line,
	})
}

// Columns 计算一行的显示列数
// 去掉行尾换行符，制表符按 4 个空格展开，按字符（rune）计数
func Columns(line string) int {
	line = TrimEOL(line)
	line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", TabWidth))
	return utf8.RuneCountInString(line)
}

// TrimEOL 去掉行尾的 "\n" 或 "\r\n"
func TrimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
