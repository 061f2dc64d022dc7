// Package config 配置管理模块
// 提供版本信息、默认配置以及可选的 YAML 配置文件加载
// 只有显式指定 --config 时才读取文件，不读取环境变量，也不在磁盘上创建任何目录
//
// Copyright (c) 2024-2026 lynx-lee

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// 版本和作者信息常量
const (
	Version   = "0.0.1"    // 程序版本号
	BuildDate = "2026"     // 构建日期
	Author    = "lynx-lee" // 作者
	License   = "MIT"      // 开源许可
	Usage     = "Usage: betty <files_to_scan>"
)

// 输出格式
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config 运行配置
// 检查阈值固定不可配置，这里只有行为开关
type Config struct {
	// ==================== 检查配置 ====================
	CheckColumns bool `yaml:"check_columns"` // 是否检查行宽
	StrictBraces bool `yaml:"strict_braces"` // 括号不平衡是否计为违规

	// ==================== 文件配置 ====================
	Recursive bool     `yaml:"recursive"`         // 目录参数是否递归展开
	Exclude   []string `yaml:"exclude,omitempty"` // doublestar 排除模式

	// ==================== 输出配置 ====================
	Verbose  bool   `yaml:"verbose"`  // 打印 "Scan <file>" 提示
	Format   string `yaml:"format"`   // text 或 json
	Color    bool   `yaml:"color"`    // 彩色输出
	Lang     string `yaml:"lang"`     // en 或 zh
	Progress bool   `yaml:"progress"` // stderr 进度条

	// ==================== 历史记录 ====================
	History string `yaml:"history,omitempty"` // SQLite 数据库路径，为空时不记录
}

// Default 创建默认配置
func Default() *Config {
	return &Config{
		CheckColumns: true,
		Format:       FormatText,
		Color:        true,
		Lang:         "en",
	}
}

// Load 从 YAML 文件加载配置
// 未知字段视为错误；文件中缺省的字段保持默认值
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid format %q: must be %s or %s", c.Format, FormatText, FormatJSON)
	}
	switch c.Lang {
	case "en", "zh":
	default:
		return fmt.Errorf("invalid lang %q: must be en or zh", c.Lang)
	}
	return nil
}

// Save 保存配置到 YAML 文件
// 先写临时文件再重命名，避免留下写了一半的文件
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*-"+filepath.Base(path))
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write to file %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(f.Name(), 0644); err != nil {
		return fmt.Errorf("os.Chmod: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("failed to rename file %s to %s: %w", f.Name(), path, err)
	}
	return nil
}
