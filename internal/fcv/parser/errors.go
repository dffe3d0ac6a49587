package parser

import "errors"

var (
	// ErrParamOutsideFrame はframe要素の外にパラメータ要素があった場合のエラー
	ErrParamOutsideFrame = errors.New("frame要素の外にパラメータ要素があります")

	// ErrUnsupportedCharset はXML宣言の文字コードに対応していない場合のエラー
	ErrUnsupportedCharset = errors.New("対応していない文字コードです")

	// ErrReadInput は入力の読み込みに失敗した場合のエラー
	ErrReadInput = errors.New("入力の読み込みに失敗しました")
)
