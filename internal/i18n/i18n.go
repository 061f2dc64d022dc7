// Package i18n 本地化模块
// 为结论和提示信息提供英文和中文两种输出
// "Error in ..." 和 "Mark:" 两种行保持英文，便于其他工具解析
//
// Copyright (c) 2024-2026 lynx-lee

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 消息键，同时也是英文原文
const (
	NoViolations = "No limits exceeded for number of functions per file or number of lines per function."
	Corrections  = "You have corrections to make."
	CantOpen     = "Can't open file %s"
	ScanFile     = "Scan %s"
)

var languageMap = map[string]language.Tag{"en": language.English, "zh": language.Chinese}

// zhCatalog 中文翻译
var zhCatalog = map[string]string{
	NoViolations: "未超出每个文件的函数个数和每个函数的行数限制。",
	Corrections:  "你有需要修改的地方。",
	CantOpen:     "无法打开文件 %s",
	ScanFile:     "扫描 %s",
}

func init() {
	for key, msg := range zhCatalog {
		if err := message.SetString(language.Chinese, key, msg); err != nil {
			panic(err)
		}
	}
}

// GetPrinter 按语言代码返回打印器，未知语言使用英文
func GetPrinter(lang string) *message.Printer {
	tag, ok := languageMap[lang]
	if !ok {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// Verdict 根据违规数返回结论
func Verdict(p *message.Printer, mark int) string {
	if mark == 0 {
		return p.Sprintf(NoViolations)
	}
	return p.Sprintf(Corrections)
}
