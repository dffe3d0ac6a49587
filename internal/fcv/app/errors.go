package app

import "errors"

var (
	// ErrFileNotFound は指定されたファイルが存在しない場合のエラー
	ErrFileNotFound = errors.New("ファイルが見つかりません")

	// ErrReadFile はファイルの読み込みに失敗した場合のエラー
	ErrReadFile = errors.New("ファイルの読み込みに失敗しました")

	// ErrExtract はタイムラインの抽出に失敗した場合のエラー
	ErrExtract = errors.New("タイムラインの抽出に失敗しました")

	// ErrPack はXFBINの生成に失敗した場合のエラー
	ErrPack = errors.New("XFBINの生成に失敗しました")

	// ErrUnpack はXFBINの読み込みに失敗した場合のエラー
	ErrUnpack = errors.New("XFBINの解析に失敗しました")

	// ErrSaveFile はファイルの保存に失敗した場合のエラー
	ErrSaveFile = errors.New("ファイルの保存に失敗しました")

	// ErrDump はタイムラインのYAML出力に失敗した場合のエラー
	ErrDump = errors.New("タイムラインの出力に失敗しました")
)
