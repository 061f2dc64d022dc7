// Package storage 数据存储模块
// 提供 SQLite 数据库的封装，用于记录每次检查运行的分数和违规明细
// 只有显式指定 --history 时才会打开数据库
//
// Copyright (c) 2024-2026 lynx-lee

package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	// 使用纯 Go 实现的 SQLite 驱动，无需 CGO
	_ "modernc.org/sqlite"

	"betty/internal/scanner"
)

// timeLayout 数据库中时间的存储格式
const timeLayout = "2006-01-02 15:04:05"

// Database 数据库管理器
type Database struct {
	db *sql.DB // SQLite 数据库连接实例
}

// Run 一次检查运行的记录
type Run struct {
	ID         string    // 运行 ID（UUID）
	StartedAt  time.Time // 开始时间
	Files      int       // 扫描成功的文件数
	Failed     int       // 打开失败的文件数
	Mark       int       // 违规总数
	Violations int       // 违规明细条数
}

// ViolationRecord 违规明细
type ViolationRecord struct {
	RunID   string
	File    string
	Line    int
	Kind    string
	Message string
	Text    string
}

// NewDatabase 打开（必要时创建）数据库并初始化表结构
func NewDatabase(path string) (*Database, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}

	// WAL 模式提升读写并发性能
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA synchronous=NORMAL")

	d := &Database{db: db}
	if err := d.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history %s: %w", path, err)
	}
	return d, nil
}

// init 初始化数据库表结构和索引
func (d *Database) init() error {
	schemas := []string{
		// ========== 运行记录表 ==========
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			files INTEGER DEFAULT 0,
			failed INTEGER DEFAULT 0,
			mark INTEGER DEFAULT 0
		)`,

		// ========== 违规明细表 ==========
		`CREATE TABLE IF NOT EXISTS violations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			file TEXT NOT NULL,
			line INTEGER NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL,
			text TEXT DEFAULT ''
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_violations_run ON violations(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_violations_file ON violations(file)`,
	}

	for _, schema := range schemas {
		if _, err := d.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

// Close 关闭数据库连接
func (d *Database) Close() error {
	return d.db.Close()
}

// ==================== 运行记录 ====================

// RecordRun 在一个事务中保存一次运行及其全部违规
// 返回新生成的运行 ID
func (d *Database) RecordRun(startedAt time.Time, result scanner.RunResult) (string, error) {
	id := uuid.New().String()

	tx, err := d.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO runs (id, started_at, files, failed, mark)
		VALUES (?, ?, ?, ?, ?)
	`, id, startedAt.UTC().Format(timeLayout), len(result.Files), len(result.Failed), result.Mark); err != nil {
		return "", err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO violations (run_id, file, line, kind, message, text)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, v := range result.Violations() {
		if _, err := stmt.Exec(id, v.File, v.Line, v.Kind.String(), v.Message, v.Text); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// RecentRuns 按时间倒序返回最近的运行记录
func (d *Database) RecentRuns(limit int) ([]Run, error) {
	rows, err := d.db.Query(`
		SELECT r.id, r.started_at, r.files, r.failed, r.mark,
			(SELECT COUNT(*) FROM violations v WHERE v.run_id = r.id)
		FROM runs r
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &startedAt, &r.Files, &r.Failed, &r.Mark, &r.Violations); err != nil {
			return nil, err
		}
		r.StartedAt, _ = parseTime(startedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunViolations 返回某次运行的违规明细（按记录顺序）
func (d *Database) RunViolations(runID string) ([]ViolationRecord, error) {
	rows, err := d.db.Query(`
		SELECT run_id, file, line, kind, message, text
		FROM violations
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ViolationRecord
	for rows.Next() {
		var v ViolationRecord
		if err := rows.Scan(&v.RunID, &v.File, &v.Line, &v.Kind, &v.Message, &v.Text); err != nil {
			return nil, err
		}
		records = append(records, v)
	}
	return records, rows.Err()
}

// FileTrend 返回某个文件在最近几次运行中的违规数（按时间倒序）
func (d *Database) FileTrend(file string, limit int) ([]int, error) {
	rows, err := d.db.Query(`
		SELECT COUNT(v.id)
		FROM runs r
		LEFT JOIN violations v ON v.run_id = r.id AND v.file = ?
		GROUP BY r.id
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?
	`, file, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return counts, rows.Err()
}

// ==================== 重置 ====================

// ResetAll 清空所有运行记录和违规明细
// 警告：此操作不可恢复
func (d *Database) ResetAll() error {
	for _, t := range []string{"violations", "runs"} {
		if _, err := d.db.Exec("DELETE FROM " + t); err != nil {
			return err
		}
	}
	return nil
}

// parseTime 解析数据库中的时间
// 驱动可能返回带时区的格式，两种都尝试
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
