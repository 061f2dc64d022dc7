// Package ui 终端界面模块
// 提供终端输出美化功能，包括颜色、图标、进度条和确认提示
//
// Copyright (c) 2024-2026 lynx-lee

package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"betty/internal/config"
)

// ==================== 颜色定义 ====================
// 使用 fatih/color 库定义各种颜色函数
var (
	Cyan     = color.New(color.FgCyan).SprintFunc()             // 青色
	Green    = color.New(color.FgGreen).SprintFunc()            // 绿色（成功）
	Yellow   = color.New(color.FgYellow).SprintFunc()           // 黄色（警告）
	Red      = color.New(color.FgRed).SprintFunc()              // 红色（错误）
	Gray     = color.New(color.FgHiBlack).SprintFunc()          // 灰色（次要信息）
	Bold     = color.New(color.Bold).SprintFunc()               // 粗体
	BoldCyan = color.New(color.FgCyan, color.Bold).SprintFunc() // 青色粗体
	BoldRed  = color.New(color.FgRed, color.Bold).SprintFunc()  // 红色粗体
)

// 输入输出，测试时可替换
var (
	Output io.Writer = color.Output // 标准输出（Windows 下支持颜色）
	Input  io.Reader = os.Stdin     // 确认提示的输入
)

// SetColor 开关彩色输出
// 非终端输出时 fatih/color 已自动关闭颜色
func SetColor(enabled bool) {
	if !enabled {
		color.NoColor = true
	}
}

// ==================== 输出函数 ====================

// Banner 打印横幅
func Banner() {
	fmt.Fprintf(Output, "\n  %s %s\n", BoldCyan("betty"), Gray("C style checker v"+config.Version))
}

// Title 打印标题
// 格式: 图标 + 青色粗体文字
func Title(icon, text string) {
	fmt.Fprintf(Output, "\n%s %s\n", icon, BoldCyan(text))
}

// Success 打印成功消息
func Success(format string, args ...interface{}) {
	fmt.Fprintf(Output, "  %s %s\n", Green("✓"), fmt.Sprintf(format, args...))
}

// Error 打印错误消息
func Error(format string, args ...interface{}) {
	fmt.Fprintf(Output, "  %s %s\n", Red("✗"), fmt.Sprintf(format, args...))
}

// Warning 打印警告消息
func Warning(format string, args ...interface{}) {
	fmt.Fprintf(Output, "  %s %s\n", Yellow("⚠"), fmt.Sprintf(format, args...))
}

// Info 打印信息消息
func Info(format string, args ...interface{}) {
	fmt.Fprintf(Output, "  %s\n", fmt.Sprintf(format, args...))
}

// Dim 打印暗色消息
func Dim(format string, args ...interface{}) {
	fmt.Fprintf(Output, "  %s\n", Gray(fmt.Sprintf(format, args...)))
}

// Divider 打印分隔线
func Divider() {
	fmt.Fprintln(Output, Gray(strings.Repeat("─", 55)))
}

// ==================== 方框绘制 ====================

// Box 绘制带标题的方框
// 用于显示运行历史等结构化信息
func Box(title string, lines []string) {
	width := 55

	fmt.Fprintln(Output, Cyan("╭"+strings.Repeat("─", width-2)+"╮"))

	// 标题行（居中）
	titlePadding := (width - 4 - len(title)) / 2
	if titlePadding < 0 {
		titlePadding = 0
	}
	rest := width - 4 - titlePadding - len(title)
	if rest < 0 {
		rest = 0
	}
	fmt.Fprintf(Output, "%s%s%s%s%s\n",
		Cyan("│"),
		strings.Repeat(" ", titlePadding),
		Bold(title),
		strings.Repeat(" ", rest),
		Cyan("│"))

	fmt.Fprintln(Output, Cyan("├"+strings.Repeat("─", width-2)+"┤"))

	for _, line := range lines {
		padding := width - 4 - displayWidth(line)
		if padding < 0 {
			padding = 0
		}
		fmt.Fprintf(Output, "%s %s%s%s\n", Cyan("│"), line, strings.Repeat(" ", padding), Cyan("│"))
	}

	fmt.Fprintln(Output, Cyan("╰"+strings.Repeat("─", width-2)+"╯"))
}

// displayWidth 计算字符串的显示宽度
// 非 ASCII 字符按 2 个宽度计算
func displayWidth(s string) int {
	width := 0
	for _, r := range s {
		if r > 127 {
			width += 2
		} else {
			width++
		}
	}
	return width
}

// ==================== 格式化函数 ====================

// FormatSize 格式化文件大小
// 将字节数转换为人类可读的格式（B/KB/MB/GB）
func FormatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// ==================== 进度条 ====================

// NewProgressBar 创建写到 stderr 的进度条
// visible 为 false 时返回静默进度条，调用方无需判断
func NewProgressBar(total int, description string, visible bool) *progressbar.ProgressBar {
	if !visible {
		return progressbar.DefaultSilent(int64(total), description)
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("  "+description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

// ==================== 交互函数 ====================

// ConfirmDanger 显示危险操作确认提示
// 带警告图标，默认不确认
func ConfirmDanger(prompt string) bool {
	fmt.Fprintf(Output, "%s %s [y/N]: ", Yellow("⚠"), prompt)
	reader := bufio.NewReader(Input)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}
