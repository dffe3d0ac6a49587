// Package interfaces はfcvxfbinコマンドで使用するインターフェースを定義します
package interfaces

import (
	"io"

	"github.com/shiroemons/go-fcvxfbin/internal/fcv/models"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
}

// TimelineExtractor はXMLからフレームのタイムラインを抽出するインターフェース
type TimelineExtractor interface {
	Extract(r io.Reader) ([]models.Frame, error)
}

// Logger はログ出力のインターフェース
type Logger interface {
	Printf(format string, a ...any)
}
