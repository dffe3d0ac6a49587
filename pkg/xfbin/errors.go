package xfbin

import "errors"

var (
	// ErrInvalidMagic はファイル先頭がNUCCでない場合のエラー
	ErrInvalidMagic = errors.New("XFBINファイルではありません (NUCCマジックが一致しません)")

	// ErrTruncated はデータが途中で終わっている場合のエラー
	ErrTruncated = errors.New("XFBINデータが途中で終わっています")

	// ErrInvalidChunkMap はチャンクマップの参照が範囲外の場合のエラー
	ErrInvalidChunkMap = errors.New("チャンクマップの参照が不正です")

	// ErrUnsupportedChunk はこのパッケージが扱えないチャンク種別の場合のエラー
	ErrUnsupportedChunk = errors.New("サポートされていないチャンク種別です")

	// ErrInvalidStruct は書き込めない構造体が含まれている場合のエラー
	ErrInvalidStruct = errors.New("書き込めない構造体が含まれています")
)
