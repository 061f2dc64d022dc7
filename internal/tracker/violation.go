package tracker

// Kind 违规类型
type Kind int

const (
	TooManyFunctions       Kind = iota // 文件中函数超过 5 个
	TooManyLinesInFunction             // 函数超过 25 行
	LineTooLong                        // 函数内的行超过 80 列
	UnbalancedBraces                   // 文件结束时括号不平衡（仅严格模式）
)

// kindInfo 违规类型的编码和提示信息
var kindInfo = map[Kind]struct {
	code    string
	message string
}{
	TooManyFunctions:       {"too-many-functions", "more than 5 functions in file"},
	TooManyLinesInFunction: {"too-many-lines-in-function", "more than 25 lines in function"},
	LineTooLong:            {"line-too-long", "more than 80 columns in line"},
	UnbalancedBraces:       {"unbalanced-braces", "unbalanced braces at end of file (depth %d)"},
}

// String 返回违规编码
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.code
	}
	return "unknown"
}

// Message 返回提示信息模板
func (k Kind) Message() string {
	return kindInfo[k].message
}

// MarshalText 以编码形式序列化，JSON 报告使用
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Violation 一次违规事件
type Violation struct {
	File    string `json:"file"`    // 文件
	Line    int    `json:"line"`    // 检测时的行号（从 1 开始）
	Kind    Kind   `json:"kind"`    // 违规类型
	Message string `json:"message"` // 提示信息
	Text    string `json:"text"`    // 违规行原文（含换行符）
}
