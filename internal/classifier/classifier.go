// Package classifier 行分类模块
// 只看每行的第一个字符，判断该行是开括号行、闭括号行还是普通代码行
// 这是对真正词法分析的近似：不处理字符串、字符常量、预处理指令和多行注释
//
// Copyright (c) 2024-2026 lynx-lee

package classifier

// Kind 行类型
type Kind int

const (
	Ordinary Kind = iota // 普通代码行（包括空行）
	Open                 // 以 '{' 开头
	Close                // 以 '}' 开头
)

// String 返回行类型名称，用于日志
func (k Kind) String() string {
	switch k {
	case Open:
		return "open"
	case Close:
		return "close"
	default:
		return "ordinary"
	}
}

// Classifier 行分类器接口
// 计数逻辑只依赖这个接口，以后可以换成基于 tokenizer 的实现
type Classifier interface {
	Classify(line string) Kind
}

// PrefixClassifier 按行首字符分类
type PrefixClassifier struct{}

// Classify 判断行类型
// 行首为 '{' 返回 Open，行首为 '}' 返回 Close，其余（含空行）返回 Ordinary
func (PrefixClassifier) Classify(line string) Kind {
	if line == "" {
		return Ordinary
	}
	switch line[0] {
	case '{':
		return Open
	case '}':
		return Close
	}
	return Ordinary
}

// Default 默认分类器
var Default Classifier = PrefixClassifier{}
