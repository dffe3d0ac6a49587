package curve

import "errors"

var (
	// ErrNotFinite は無限大やNaNが指定された場合のエラー
	ErrNotFinite = errors.New("有限の数値ではありません")

	// ErrInvalidNumber は10進数として解釈できない表記の場合のエラー
	ErrInvalidNumber = errors.New("10進数として解釈できません")
)
