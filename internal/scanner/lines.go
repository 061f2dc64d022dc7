package scanner

import (
	"bufio"
	"io"
)

// LineReader 逐行读取，保留行尾换行符并记录行号
// 与 bufio.Scanner 不同，不限制单行长度
type LineReader struct {
	r       *bufio.Reader
	line    string
	err     error
	LineNum int
}

// NewLineReader 创建行读取器
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Scan 读取下一行，没有更多行或出错时返回 false
func (lr *LineReader) Scan() bool {
	if lr.err != nil {
		return false
	}
	line, err := lr.r.ReadString('\n')
	if err != nil {
		lr.err = err
		if line == "" {
			return false
		}
	}
	lr.line = line
	lr.LineNum++
	return true
}

// Text 返回当前行（含换行符）
func (lr *LineReader) Text() string {
	return lr.line
}

// Err 返回第一个非 EOF 错误
func (lr *LineReader) Err() error {
	if lr.err == io.EOF {
		return nil
	}
	return lr.err
}
