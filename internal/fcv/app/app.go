// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/shiroemons/go-fcvxfbin/internal/fcv/config"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/curve"
	fcverrors "github.com/shiroemons/go-fcvxfbin/internal/fcv/errors"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/fileutil"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/interfaces"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/models"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/parser"
	"github.com/shiroemons/go-fcvxfbin/pkg/xfbin"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config    *config.Config
	logger    interfaces.Logger
	extractor interfaces.TimelineExtractor
	encoder   *curve.Encoder
	fs        interfaces.FileSystem
	out       io.Writer
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Extractor  interfaces.TimelineExtractor
	Logger     interfaces.Logger
	Output     io.Writer // 結果の表示先（デフォルトは標準出力）
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	var logger interfaces.Logger = config.NewDebugLogger(cfg.DebugMode)
	if opts.Logger != nil {
		logger = opts.Logger
	}

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	// デフォルトのExtractorを設定
	var extractor interfaces.TimelineExtractor
	if opts.Extractor != nil {
		extractor = opts.Extractor
	} else {
		extractor = parser.NewTimelineParser()
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return &App{
		config:    cfg,
		logger:    logger,
		extractor: extractor,
		encoder:   curve.NewEncoder(logger),
		fs:        fs,
		out:       out,
	}
}

// Run は入力XMLを変換してXFBINファイルを出力します
func (a *App) Run(ctx context.Context) error {
	frames, err := a.loadTimeline(ctx)
	if err != nil {
		return err
	}

	// カーブの生成
	var curves []*curve.Curve
	if a.config.Parallel {
		curves, err = a.encoder.EncodeParallel(ctx, frames)
	} else {
		curves, err = a.encoder.Encode(frames)
	}
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// 1カーブにつき1ページ
	baseName := fileutil.BaseName(a.config.InputPath)
	container := &xfbin.Xfbin{}
	for _, c := range curves {
		container.AddPage(c.Asset(baseName))
	}

	data, err := xfbin.Marshal(container)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPack, err)
	}

	outputPath := filepath.Join(a.config.OutputDir, fileutil.GenerateOutputFilename(a.config.InputPath))

	a.printSummary(baseName, len(frames), curves)

	if a.config.DryRun {
		fmt.Fprintf(a.out, "ドライラン: %s (%d バイト) は書き込みません\n", outputPath, len(data))
		return nil
	}

	if err := fileutil.SaveFile(a.fs, outputPath, data); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFile, err)
	}

	fmt.Fprintf(a.out, "%s に保存しました\n", outputPath)
	return nil
}

// Dump は入力XMLから抽出したタイムラインをYAMLで書き出します
func (a *App) Dump(ctx context.Context, w io.Writer) error {
	frames, err := a.loadTimeline(ctx)
	if err != nil {
		return err
	}

	timeline := models.Timeline{
		Source: filepath.Base(a.config.InputPath),
		Frames: frames,
	}

	data, err := yaml.Marshal(timeline)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDump, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrDump, err)
	}
	return nil
}

// List はXFBINファイル内のチャンク一覧を表示します
func (a *App) List(ctx context.Context, path string, w io.Writer) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !a.fs.FileExists(path) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := a.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReadFile, path, err)
	}

	container, err := xfbin.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnpack, path, err)
	}
	a.logger.Printf("%s: %d ページ\n", path, len(container.Pages))

	fmt.Fprintln(w, "XFBIN内のチャンク一覧:")
	fmt.Fprintln(w, "----------------------------")
	fmt.Fprintf(w, "%-4s %-32s %-16s %10s  %s\n", "ページ", "チャンク名", "種別", "サイズ", "パス")
	fmt.Fprintln(w, "----------------------------")

	if container.StructCount() == 0 {
		fmt.Fprintln(w, "チャンクがありません")
		return nil
	}

	for i, page := range container.Pages {
		for _, s := range page.Structs {
			info := s.Info()
			fmt.Fprintf(w, "%-4d %-32s %-16s %10d  %s\n",
				i,
				info.ChunkName,
				info.ChunkType,
				structSize(s),
				info.FilePath)
		}
	}
	fmt.Fprintln(w, "----------------------------")
	return nil
}

// loadTimeline は設定を検証し、入力XMLからタイムラインを抽出します
func (a *App) loadTimeline(ctx context.Context) ([]models.Frame, error) {
	if err := a.config.Validate(); err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !a.fs.FileExists(a.config.InputPath) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, a.config.InputPath)
	}

	a.logger.Printf("%s を読み込みます...\n", a.config.InputPath)
	data, err := a.fs.ReadFile(a.config.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFile, a.config.InputPath, err)
	}

	frames, err := a.extractor.Extract(bytes.NewReader(data))
	if err != nil {
		var parseErr *fcverrors.ParseError
		if errors.As(err, &parseErr) {
			if parseErr.File == "" {
				parseErr.File = a.config.InputPath
			}
			return nil, parseErr
		}
		return nil, fmt.Errorf("%w: %w", ErrExtract, err)
	}
	a.logger.Printf("%d フレームを抽出しました\n", len(frames))

	return frames, nil
}

// printSummary は出力するアセットの一覧を表示します
func (a *App) printSummary(baseName string, frameCount int, curves []*curve.Curve) {
	fmt.Fprintf(a.out, "%s: %d フレーム, %d アセット\n", baseName, frameCount, len(curves))
	for _, c := range curves {
		fmt.Fprintf(a.out, "  %-32s %6d レコード %8d バイト\n", c.Name(baseName), c.Records, len(c.Data))
	}
}

// structSize はチャンク本体のデータサイズを返します
func structSize(s xfbin.Struct) int {
	if b, ok := s.(*xfbin.Binary); ok {
		return len(b.Data)
	}
	return len(s.MarshalChunk())
}
