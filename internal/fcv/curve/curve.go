// Package curve はフレームのタイムラインからfcvカーブデータを生成します
package curve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shiroemons/go-fcvxfbin/pkg/xfbin"
)

// InterpolationConstraint はヘッダ2行目に書き込む補間モード
const InterpolationConstraint = "FCURVE_INTERPOLATION_CONSTRAINT"

// lineEnd はfcvの行末
const lineEnd = "\r\n"

// カーブ種別ごとのサフィックス
const (
	SuffixGlare         = "glare"
	SuffixSoftFocus     = "softfocus"
	SuffixDepthOfField  = "dof"
	SuffixBrightRate    = "bright_rate"
	SuffixZRange        = "zrange"
	SuffixBCAdjustments = "bcadjustments"
)

// Curve は1種類のカーブのfcvデータ
type Curve struct {
	Suffix  string // カーブ種別のサフィックス
	Records int    // レコード数
	Data    []byte // ヘッダとレコードを連結したテキスト
}

// Name はアセット名 <base>_<suffix> を返します
func (c *Curve) Name(baseName string) string {
	return baseName + "_" + c.Suffix
}

// FilePath はアセットの仮想パスを返します
func (c *Curve) FilePath(baseName string) string {
	return fmt.Sprintf("Z:/anm/%s/fcv/%s.fcv", baseName, c.Name(baseName))
}

// Asset はカーブをXFBINのバイナリチャンクとして包みます
func (c *Curve) Asset(baseName string) *xfbin.Binary {
	return &xfbin.Binary{
		StructInfo: xfbin.StructInfo{
			ChunkName: c.Name(baseName),
			ChunkType: xfbin.ChunkTypeBinary,
			FilePath:  c.FilePath(baseName),
		},
		Version: xfbin.Version,
		Data:    c.Data,
	}
}

// header はカーブ種別、補間モード、レコード数の3行を返します
func header(curveType string, records int) string {
	var b strings.Builder
	b.WriteString(curveType)
	b.WriteString("," + lineEnd)
	b.WriteString(InterpolationConstraint)
	b.WriteString("," + lineEnd)
	b.WriteString(strconv.Itoa(records))
	b.WriteString("," + lineEnd)
	return b.String()
}
