// Package cmd 命令行入口模块
// reset.go - 重置命令，用于清除记录的运行历史
//
// Copyright (c) 2024-2026 lynx-lee

package cmd

import (
	"github.com/spf13/cobra"

	"betty/internal/storage"
	"betty/internal/ui"
)

// 重置选项标志
var (
	resetDB  string // 数据库路径
	resetYes bool   // 跳过确认
)

// resetCmd 重置命令定义
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear recorded runs",
	Long:  "Delete every run and violation recorded with --history",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

// init 注册 reset 子命令及其标志
func init() {
	resetCmd.Flags().StringVar(&resetDB, "db", "", "SQLite database written by --history")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")
	resetCmd.MarkFlagRequired("db")
	rootCmd.AddCommand(resetCmd)
}

// runReset 执行重置命令
func runReset(cmd *cobra.Command, args []string) error {
	db, err := storage.NewDatabase(resetDB)
	if err != nil {
		return err
	}
	defer db.Close()

	if !resetYes && !ui.ConfirmDanger("Delete all recorded runs in "+resetDB+"?") {
		ui.Warning("cancelled")
		return nil
	}
	if err := db.ResetAll(); err != nil {
		return err
	}
	ui.Success("history cleared")
	return nil
}
