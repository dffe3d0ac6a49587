package curve

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// frameKeyDivisor はno属性（1/100フレーム単位）をキーフレーム番号に変換する除数
	frameKeyDivisor = 100

	// minFieldWidth は数値フィールドの最小文字数
	minFieldWidth = 8

	// fieldPrecision は小数点以下の桁数
	fieldPrecision = 6
)

// FrameKey はno属性を符号なし32ビット整数として解釈し、100で切り捨て除算した値を返します
func FrameKey(no string) (uint32, error) {
	// 先頭の '+' は1つだけ許可する
	s := strings.TrimPrefix(no, "+")
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v) / frameKeyDivisor, nil
}

// FormatValue は値を小数点以下6桁で表記し、8文字に満たない場合は右側を '0' で埋めます。
// 整数部が長い場合は8文字を超えても切り詰めません。
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', fieldPrecision, 64)
	if n := minFieldWidth - len(s); n > 0 {
		s += strings.Repeat("0", n)
	}
	return s
}

// parseField は文字列を32ビット浮動小数点数として解釈します
func parseField(s string) (float32, error) {
	if strings.ContainsAny(s, "xX_") {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	return float32(v), nil
}

// formatField は文字列の数値をfcvのフィールド表記に変換します
func formatField(s string) (string, error) {
	v, err := parseField(s)
	if err != nil {
		return "", err
	}
	return FormatValue(float64(v)), nil
}
