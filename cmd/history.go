// Package cmd 命令行入口模块
// history 命令：查看记录的检查运行
//
// Copyright (c) 2024-2026 lynx-lee

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"betty/internal/storage"
	"betty/internal/ui"
)

// historyCmd 历史命令定义
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded runs",
	Long: `Show runs recorded with --history.

Without a run id the most recent runs are listed.

Examples:
  betty history --db runs.db                # list recent runs
  betty history --db runs.db <run-id>       # violations of one run
  betty history --db runs.db --file main.c  # violation trend of one file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

// history 命令行参数
var (
	historyDB    string // 数据库路径
	historyLimit int    // 列出的运行数
	historyFile  string // 查看单个文件的趋势
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyDB, "db", "", "SQLite database written by --history")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to list")
	historyCmd.Flags().StringVar(&historyFile, "file", "", "show the violation count of this file per run")
	historyCmd.MarkFlagRequired("db")
}

// runHistory 执行历史查询
func runHistory(cmd *cobra.Command, args []string) error {
	db, err := storage.NewDatabase(historyDB)
	if err != nil {
		return err
	}
	defer db.Close()

	switch {
	case len(args) > 0:
		return showRun(db, args[0])
	case historyFile != "":
		return showTrend(db, historyFile)
	default:
		return listRuns(db)
	}
}

// listRuns 列出最近的运行
func listRuns(db *storage.Database) error {
	runs, err := db.RecentRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		ui.Warning("no recorded runs")
		return nil
	}

	ui.Title("📋", "Recent runs")
	fmt.Fprintln(ui.Output)
	for i, run := range runs {
		mark := ui.Green(fmt.Sprintf("Mark: %d", -run.Mark))
		if run.Mark != 0 {
			mark = ui.Red(fmt.Sprintf("Mark: %d", -run.Mark))
		}
		fmt.Fprintf(ui.Output, "  %s %s  %s\n", ui.Green(fmt.Sprintf("[%d]", i+1)), ui.Bold(run.ID), mark)
		fmt.Fprintf(ui.Output, "      📄 %d files  ✗ %d unreadable  📅 %s\n",
			run.Files, run.Failed, run.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintln(ui.Output)
	}
	ui.Dim("use 'betty history --db %s <run-id>' to list the violations of a run", historyDB)
	return nil
}

// showRun 显示某次运行的违规明细
func showRun(db *storage.Database, runID string) error {
	records, err := db.RunViolations(runID)
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(records))
	for i, v := range records {
		// 最多显示 20 条
		if i >= 20 {
			lines = append(lines, fmt.Sprintf("... %d more", len(records)-20))
			break
		}
		lines = append(lines, truncateString(fmt.Sprintf("%s:%d %s", v.File, v.Line, v.Kind), 50))
	}
	if len(lines) == 0 {
		lines = append(lines, "no violations")
	}
	ui.Box(truncateString(runID, 36), lines)
	return nil
}

// showTrend 显示单个文件在最近几次运行中的违规数
func showTrend(db *storage.Database, file string) error {
	counts, err := db.FileTrend(file, historyLimit)
	if err != nil {
		return err
	}
	ui.Title("📈", file)
	for i, n := range counts {
		ui.Info("%2d runs ago  %d violations", i, n)
	}
	return nil
}

// truncateString 截断字符串
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
