// Package config はfcvxfbinコマンドの設定管理を行います
package config

import (
	"fmt"
	"io"
	"os"

	fcverrors "github.com/shiroemons/go-fcvxfbin/internal/fcv/errors"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/fileutil"
)

const Version = "0.1.0"

// Config はアプリケーションの設定を保持します
type Config struct {
	InputPath string
	OutputDir string
	DebugMode bool
	DryRun    bool
	Parallel  bool
}

// New はデフォルト値の設定を作成します
func New(inputPath string) *Config {
	return &Config{
		InputPath: inputPath,
		OutputDir: ".",
	}
}

// Validate は入力ファイルの指定を検証します
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("%w: 入力ファイルが指定されていません", fcverrors.ErrUsage)
	}
	// 拡張子は大文字小文字を区別する
	if !fileutil.IsXMLFile(c.InputPath) {
		return fmt.Errorf("%w: 入力ファイルは .xml である必要があります: %s", fcverrors.ErrUsage, c.InputPath)
	}
	return nil
}

// DebugLogger はデバッグ出力を管理します
type DebugLogger struct {
	enabled bool
	w       io.Writer
}

// NewDebugLogger は標準エラー出力に書き込むDebugLoggerを作成します
func NewDebugLogger(enabled bool) *DebugLogger {
	return NewDebugLoggerWithWriter(enabled, os.Stderr)
}

// NewDebugLoggerWithWriter は出力先を指定してDebugLoggerを作成します
func NewDebugLoggerWithWriter(enabled bool, w io.Writer) *DebugLogger {
	return &DebugLogger{enabled: enabled, w: w}
}

// Printf はデバッグモードが有効な場合のみメッセージを表示します。
// 標準出力はコマンドの結果 (YAMLなど) に使うため書き込みません。
func (d *DebugLogger) Printf(format string, a ...any) {
	if d.enabled {
		fmt.Fprintf(d.w, format, a...)
	}
}
