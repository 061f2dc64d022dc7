// Package scanner 文件遍历模块
// 负责筛选待检查的文件、逐个打开并把每一行交给作用域跟踪器
// 所有文件严格按顺序处理，违规总数由本次运行的结果累加返回
//
// Copyright (c) 2024-2026 lynx-lee

package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"
	"golang.org/x/exp/slices"
)

// ErrNoFiles 参数中没有可检查的 .c/.h 文件
var ErrNoFiles = errors.New("no .c or .h files to scan")

// Extensions 参与检查的文件后缀（区分大小写）
var Extensions = []string{".c", ".h"}

// skipNames 递归展开目录时跳过的目录名
var skipNames = map[string]bool{
	".git":         true, // Git 版本控制
	".svn":         true, // SVN 版本控制
	"node_modules": true, // Node.js 依赖
	".idea":        true, // JetBrains IDE 配置
	".vscode":      true, // VS Code 配置
	"build":        true, // 构建输出
}

// ExpandOptions 参数展开选项
type ExpandOptions struct {
	Recursive bool     // 目录参数是否递归展开
	Exclude   []string // doublestar 排除模式
}

// IsSource 判断文件名是否以 .c 或 .h 结尾
func IsSource(name string) bool {
	for _, ext := range Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IsChecked 判断文件是否启用检查，只有 .c 文件启用
func IsChecked(name string) bool {
	return strings.HasSuffix(name, ".c")
}

// Expand 把命令行参数展开为待检查文件列表
// 保留参数顺序；以 .c/.h 结尾的参数原样保留（不检查是否存在，打开失败在遍历时报告）
// Recursive 开启时目录参数展开为其下的 .c/.h 文件（按字典序）
func Expand(args []string, opts ExpandOptions) ([]string, error) {
	var files []string
	for _, arg := range args {
		if IsSource(arg) {
			excluded, err := matchExclude(opts.Exclude, arg)
			if err != nil {
				return nil, err
			}
			if !excluded {
				files = append(files, arg)
			}
			continue
		}

		if !opts.Recursive {
			glog.V(2).Infof("skipping argument %s: not a .c or .h file", arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			glog.V(2).Infof("skipping argument %s", arg)
			continue
		}
		found, err := walkDir(arg, opts.Exclude)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// walkDir 递归收集目录下的 .c/.h 文件
func walkDir(root string, exclude []string) ([]string, error) {
	var files []string
	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			glog.Warningf("walk %s: %v", path, err)
			return nil // 忽略访问错误，继续扫描
		}

		name := d.Name()
		if d.IsDir() {
			// 跳过隐藏目录和特定目录（根目录本身除外）
			if path != root && (strings.HasPrefix(name, ".") || skipNames[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !IsSource(name) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		excluded, err := matchExclude(exclude, rel, path)
		if err != nil {
			return err
		}
		if !excluded {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// matchExclude 判断路径是否命中任一排除模式
// 目录展开出的文件同时用相对路径和完整路径匹配
func matchExclude(patterns []string, paths ...string) (bool, error) {
	for _, pattern := range patterns {
		for _, path := range paths {
			matched, err := doublestar.Match(pattern, filepath.ToSlash(path))
			if err != nil {
				return false, fmt.Errorf("malformed exclude pattern %s: %w", pattern, err)
			}
			if matched {
				glog.V(1).Infof("file %s ignored due to pattern %s", path, pattern)
				return true, nil
			}
		}
	}
	return false, nil
}
