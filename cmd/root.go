// Package cmd 命令行入口模块
// 提供 betty 的所有命令行功能，包括检查、统计、历史记录和配置
//
// Copyright (c) 2024-2026 lynx-lee

package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"betty/internal/config"
	"betty/internal/i18n"
	"betty/internal/report"
	"betty/internal/scanner"
	"betty/internal/storage"
	"betty/internal/tracker"
	"betty/internal/ui"
)

// 命令行参数变量
var (
	configPath   string   // YAML 配置文件路径
	verbose      bool     // 打印 "Scan <file>" 提示
	recursive    bool     // 递归展开目录参数
	excludes     []string // doublestar 排除模式
	noColumns    bool     // 关闭行宽检查
	strictBraces bool     // 括号不平衡计为违规
	progress     bool     // stderr 进度条
	format       string   // 输出格式
	noColor      bool     // 关闭彩色输出
	lang         string   // 输出语言
	historyPath  string   // 运行历史数据库
	debug        bool     // 打开 glog 详细日志
)

// rootCmd 根命令定义
// 检查参数中的 C 源文件并输出分数
var rootCmd = &cobra.Command{
	Use:   "betty <files_to_scan>",
	Short: "betty - C style checker",
	Long: `betty checks C source files against three fixed limits:
  at most 5 functions per file
  at most 25 lines per function
  at most 80 columns per line

Only .c files are checked. .h files are accepted and read but never produce errors.

Examples:
  betty main.c util.c           # check two files
  betty -v src/*.c              # print each file before scanning it
  betty -r src --exclude '**/vendor/**'
  betty --format json *.c       # machine readable report
  betty stats *.c               # per file structure and line counts
`,
	Args:          cobra.ArbitraryArgs, // 非 .c/.h 参数静默忽略
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCheck,
}

// init 初始化命令行参数
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML configuration file")
	flags.BoolVarP(&recursive, "recursive", "r", false, "expand directory arguments recursively")
	flags.StringSliceVar(&excludes, "exclude", nil, "skip files matching the glob (repeatable, ** allowed)")
	flags.BoolVar(&noColumns, "no-columns", false, "disable the 80 column check")
	flags.BoolVar(&strictBraces, "strict-braces", false, "report unbalanced braces at end of file")
	flags.BoolVar(&progress, "progress", false, "show a progress bar on stderr")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.StringVar(&lang, "lang", "en", "output language (en, zh)")
	flags.BoolVar(&debug, "debug", false, "verbose diagnostic logging on stderr")

	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print each file name before scanning it")
	rootCmd.Flags().StringVar(&format, "format", config.FormatText, "output format (text, json)")
	rootCmd.Flags().StringVar(&historyPath, "history", "", "record the run in this SQLite database")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd != rootCmd {
			defaultHelp(cmd, args)
			return
		}
		printHelp(ui.Output)
	})
}

// Execute 执行根命令
// 这是程序的主入口，由 main.go 调用
func Execute() {
	// glog 只输出到 stderr，不在磁盘上创建日志文件
	flag.CommandLine.Parse(nil)
	flag.Set("logtostderr", "true")
	defer glog.Flush()

	// 单横线的 -help 不是合法的 pflag 参数，需要在解析前处理
	if slices.Contains(os.Args[1:], "-help") {
		printHelp(ui.Output)
		return
	}

	if err := rootCmd.Execute(); err != nil {
		ui.Error("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}

// printHelp 打印简短帮助
func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Help")
	fmt.Fprintf(w, "Betty version %s\n", config.Version)
	fmt.Fprintln(w, config.Usage)
}

// loadConfig 合并配置文件和命令行参数
// 只有指定 --config 时才读取文件；显式给出的命令行参数优先
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("verbose") {
		cfg.Verbose = verbose
	}
	if changed("recursive") {
		cfg.Recursive = recursive
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, excludes...)
	}
	if changed("no-columns") {
		cfg.CheckColumns = !noColumns
	}
	if changed("strict-braces") {
		cfg.StrictBraces = strictBraces
	}
	if changed("progress") {
		cfg.Progress = progress
	}
	if changed("format") {
		cfg.Format = format
	}
	if changed("no-color") {
		cfg.Color = !noColor
	}
	if changed("lang") {
		cfg.Lang = lang
	}
	if changed("history") {
		cfg.History = historyPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if debug {
		flag.Set("v", "2")
	}
	ui.SetColor(cfg.Color)
	glog.V(1).Infof("effective config: %+v", *cfg)
	return cfg, nil
}

// runCheck 执行检查的核心逻辑
// 整体流程：展开参数 -> 逐个文件扫描 -> 输出分数 -> 记录历史（可选）
func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(ui.Output, config.Usage)
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, err = check(cfg, args, ui.Output)
	return err
}

// check 扫描参数中的文件并把报告写到 w
// 违规和打开失败都不是错误，只有报告写入失败或排除模式非法时返回错误
func check(cfg *config.Config, args []string, w io.Writer) (scanner.RunResult, error) {
	files, err := scanner.Expand(args, scanner.ExpandOptions{
		Recursive: cfg.Recursive,
		Exclude:   cfg.Exclude,
	})
	if err != nil {
		return scanner.RunResult{}, err
	}

	startedAt := time.Now()
	rep := report.New(cfg.Format, w, cfg.Verbose, i18n.GetPrinter(cfg.Lang))
	walker := &scanner.Walker{
		Options:  trackerOptions(cfg),
		Handler:  rep,
		Progress: cfg.Progress,
	}
	result := walker.Run(files)
	if err := rep.Summary(result); err != nil {
		return result, fmt.Errorf("write report: %w", err)
	}

	if cfg.History != "" {
		recordHistory(cfg.History, startedAt, result)
	}
	return result, nil
}

// trackerOptions 由配置生成跟踪选项，Enabled 由遍历器按文件后缀设置
func trackerOptions(cfg *config.Config) tracker.Options {
	opts := tracker.DefaultOptions()
	opts.CheckColumns = cfg.CheckColumns
	opts.StrictBraces = cfg.StrictBraces
	return opts
}

// recordHistory 保存本次运行，失败只记录日志，不影响分数和退出码
func recordHistory(path string, startedAt time.Time, result scanner.RunResult) {
	db, err := storage.NewDatabase(path)
	if err != nil {
		glog.Warningf("history disabled: %v", err)
		return
	}
	defer db.Close()

	id, err := db.RecordRun(startedAt, result)
	if err != nil {
		glog.Warningf("cannot record run in %s: %v", path, err)
		return
	}
	glog.V(1).Infof("run %s recorded in %s", id, path)
}
