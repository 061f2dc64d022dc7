// Package cmd 命令行入口模块
// version.go - 版本命令，显示程序版本和作者信息
//
// Copyright (c) 2024-2026 lynx-lee

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"betty/internal/config"
	"betty/internal/tracker"
	"betty/internal/ui"
)

// versionCmd 版本命令定义
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Version information",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Banner()
		fmt.Fprintln(ui.Output)
		fmt.Fprintf(ui.Output, "  version:  %s\n", config.Version)   // 版本号
		fmt.Fprintf(ui.Output, "  author:   %s\n", config.Author)    // 作者
		fmt.Fprintf(ui.Output, "  license:  %s\n", config.License)   // 开源许可
		fmt.Fprintf(ui.Output, "  build:    %s\n", config.BuildDate) // 构建日期
		fmt.Fprintf(ui.Output, "  limits:   %d functions, %d lines, %d columns\n",
			tracker.MaxFunctions, tracker.MaxFunctionLines, tracker.MaxColumns)
		fmt.Fprintln(ui.Output)
	},
}

// init 注册 version 子命令
func init() {
	rootCmd.AddCommand(versionCmd)
}
