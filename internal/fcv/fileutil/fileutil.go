// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shiroemons/go-fcvxfbin/internal/fcv/interfaces"
)

const (
	// XMLExt は入力ファイルの拡張子
	XMLExt = ".xml"

	// OutputExt は出力ファイルの拡張子
	OutputExt = ".fcv.xfbin"
)

// IsXMLFile は入力ファイルの拡張子が .xml か判定します（大文字小文字を区別）
func IsXMLFile(filename string) bool {
	return strings.HasSuffix(filename, XMLExt)
}

// BaseName はパスからディレクトリと最後の拡張子を除いたファイル名を返します
func BaseName(path string) string {
	baseName := filepath.Base(path)
	return strings.TrimSuffix(baseName, filepath.Ext(baseName))
}

// GenerateOutputFilename は入力ファイル名から出力ファイル名を生成します
func GenerateOutputFilename(inputPath string) string {
	return BaseName(inputPath) + OutputExt
}

// SaveFile は出力先ディレクトリを作成してからファイルを保存します
func SaveFile(fs interfaces.FileSystem, outputPath string, data []byte) error {
	dir := filepath.Dir(outputPath)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}

	if err := fs.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}

	return nil
}
