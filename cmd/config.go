// Package cmd 命令行入口模块
// config.go - 配置命令，用于查看和保存生效的配置
//
// Copyright (c) 2024-2026 lynx-lee

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"betty/internal/config"
	"betty/internal/tracker"
	"betty/internal/ui"
)

// writePath 保存配置的目标文件
var writePath string

// configCmd 配置管理命令定义
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging --config and the command line flags.

Examples:
  betty config --config betty.yaml
  betty config --no-columns --write betty.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

// init 注册 config 子命令及其标志
func init() {
	configCmd.Flags().StringVar(&writePath, "write", "", "save the effective configuration to this YAML file")
	rootCmd.AddCommand(configCmd)
}

// runConfig 执行配置命令
// 指定 --write 时保存配置，否则显示当前配置
func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if writePath != "" {
		if err := cfg.Save(writePath); err != nil {
			return err
		}
		ui.Success("configuration saved to %s", writePath)
		return nil
	}

	showConfig(cfg)
	return nil
}

// showConfig 显示当前配置
func showConfig(cfg *config.Config) {
	ui.Title("⚙️", "Configuration")
	ui.Divider()

	fmt.Fprintln(ui.Output)
	ui.Info("Limits (fixed):")
	ui.Info("  functions per file:  %d", tracker.MaxFunctions)
	ui.Info("  lines per function:  %d", tracker.MaxFunctionLines)
	ui.Info("  columns per line:    %d (tab = %d)", tracker.MaxColumns, tracker.TabWidth)

	fmt.Fprintln(ui.Output)
	ui.Info("Checks:")
	ui.Info("  column check:        %s", onOff(cfg.CheckColumns))
	ui.Info("  strict braces:       %s", onOff(cfg.StrictBraces))

	fmt.Fprintln(ui.Output)
	ui.Info("Files:")
	ui.Info("  recursive:           %s", onOff(cfg.Recursive))
	exclude := "-"
	if len(cfg.Exclude) > 0 {
		exclude = strings.Join(cfg.Exclude, ", ")
	}
	ui.Info("  exclude:             %s", exclude)

	fmt.Fprintln(ui.Output)
	ui.Info("Output:")
	ui.Info("  verbose:             %s", onOff(cfg.Verbose))
	ui.Info("  format:              %s", cfg.Format)
	ui.Info("  color:               %s", onOff(cfg.Color))
	ui.Info("  language:            %s", cfg.Lang)
	ui.Info("  progress bar:        %s", onOff(cfg.Progress))

	history := "-"
	if cfg.History != "" {
		history = cfg.History
	}
	ui.Info("  history database:    %s", history)
}

// onOff 布尔值的显示文字
func onOff(b bool) string {
	if b {
		return ui.Green("on")
	}
	return ui.Gray("off")
}
