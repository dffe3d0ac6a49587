// Package errors はカスタムエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrUsage はコマンドの使い方が誤っている場合のエラー
	ErrUsage = errors.New("使用方法が正しくありません")

	// ErrParse はXMLの解析に失敗した場合のエラー
	ErrParse = errors.New("XMLの解析に失敗しました")

	// ErrData は数値として解釈できない値があった場合のエラー
	ErrData = errors.New("数値として解釈できない値があります")
)

// ParseError はXML解析のエラー
type ParseError struct {
	File string // ファイル名（不明な場合は空）
	Line int    // 入力の行番号（不明な場合は0）
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *ParseError) Error() string {
	file := e.File
	if file == "" {
		file = "XML"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%sの解析エラー (%d行目): %v", file, e.Line, e.Err)
	}
	return fmt.Sprintf("%sの解析エラー: %v", file, e.Err)
}

// Unwrap は元のエラーを返します
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is は ErrParse との比較を可能にします
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError は新しいParseErrorを作成します
func NewParseError(file string, line int, err error) *ParseError {
	return &ParseError{
		File: file,
		Line: line,
		Err:  err,
	}
}

// DataError はカーブ生成時の数値変換エラー
type DataError struct {
	Curve string // カーブ種別のサフィックス (glare, dof など)
	Frame string // フレームのno属性
	Field string // フィールド名
	Value string // 変換できなかった値
	Err   error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *DataError) Error() string {
	return fmt.Sprintf("%s カーブ (frame no=%q) の %s が不正です: %q: %v", e.Curve, e.Frame, e.Field, e.Value, e.Err)
}

// Unwrap は元のエラーを返します
func (e *DataError) Unwrap() error {
	return e.Err
}

// Is は ErrData との比較を可能にします
func (e *DataError) Is(target error) bool {
	return target == ErrData
}

// NewDataError は新しいDataErrorを作成します
func NewDataError(curve, frame, field, value string, err error) *DataError {
	return &DataError{
		Curve: curve,
		Frame: frame,
		Field: field,
		Value: value,
		Err:   err,
	}
}
