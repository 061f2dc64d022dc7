// Package cmd 命令行入口模块
// stats.go - 统计命令，显示每个文件的结构和行数统计
//
// Copyright (c) 2024-2026 lynx-lee

package cmd

import (
	"github.com/spf13/cobra"

	"betty/internal/scanner"
	"betty/internal/ui"
)

// statsCmd 统计命令定义
var statsCmd = &cobra.Command{
	Use:   "stats <files>",
	Short: "File statistics",
	Long:  "Show functions, longest function, brace depth and code/comment/blank line counts per file",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runStats,
}

// init 注册 stats 子命令
func init() {
	rootCmd.AddCommand(statsCmd)
}

// runStats 执行统计命令
func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	files, err := scanner.Expand(args, scanner.ExpandOptions{
		Recursive: cfg.Recursive,
		Exclude:   cfg.Exclude,
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		ui.Warning("%v", scanner.ErrNoFiles)
		return nil
	}

	ui.Banner()
	stats := scanner.GetStatistics(files, trackerOptions(cfg))
	scanner.PrintStatistics(stats)
	return nil
}
