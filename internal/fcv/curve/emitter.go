package curve

import (
	"strconv"
	"strings"

	fcverrors "github.com/shiroemons/go-fcvxfbin/internal/fcv/errors"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/models"
)

// brightRateParam は明るさ倍率として扱う p_gp の名前
const brightRateParam = "bgbout"

// Emitter は1種類のカーブを生成するインターフェース
type Emitter interface {
	// Suffix はカーブ種別のサフィックスを返します
	Suffix() string

	// Produce はタイムラインからカーブを生成します。
	// 対象となるフレームがない場合は nil を返します。
	Produce(frames []models.Frame) (*Curve, error)
}

// field はレコードに書き出す1フィールド（名前はエラー表示用）
type field struct {
	name  string
	value string
}

// frameCurve はフレームごとに1レコードを出力するカーブ
type frameCurve struct {
	suffix    string
	curveType string
	// fields はフレームが対象であればフィールドを返します
	fields func(f *models.Frame) ([]field, bool)
}

// Suffix はカーブ種別のサフィックスを返します
func (c *frameCurve) Suffix() string {
	return c.suffix
}

// Produce は対象フレームごとに <key>,<f1>,...,<fn>,\r\n を出力します
func (c *frameCurve) Produce(frames []models.Frame) (*Curve, error) {
	var records strings.Builder
	count := 0

	for i := range frames {
		frame := &frames[i]
		fields, ok := c.fields(frame)
		if !ok {
			continue
		}

		key, err := FrameKey(frame.No)
		if err != nil {
			return nil, fcverrors.NewDataError(c.suffix, frame.No, "no", frame.No, err)
		}
		records.WriteString(strconv.FormatUint(uint64(key), 10))
		records.WriteByte(',')

		for _, f := range fields {
			v, err := formatField(f.value)
			if err != nil {
				return nil, fcverrors.NewDataError(c.suffix, frame.No, f.name, f.value, err)
			}
			records.WriteString(v)
			records.WriteByte(',')
		}
		records.WriteString(lineEnd)
		count++
	}

	if count == 0 {
		return nil, nil
	}

	return &Curve{
		Suffix:  c.suffix,
		Records: count,
		Data:    []byte(header(c.curveType, count) + records.String()),
	}, nil
}

// constCurve はタイムラインに依存しない固定のカーブ
type constCurve struct {
	suffix    string
	curveType string
	record    string
}

// Suffix はカーブ種別のサフィックスを返します
func (c *constCurve) Suffix() string {
	return c.suffix
}

// Produce は常に1レコードの固定データを返します
func (c *constCurve) Produce(_ []models.Frame) (*Curve, error) {
	return &Curve{
		Suffix:  c.suffix,
		Records: 1,
		Data:    []byte(header(c.curveType, 1) + c.record + lineEnd),
	}, nil
}

// NewGlareEmitter はグレアのカーブを生成するEmitterを作成します
func NewGlareEmitter() Emitter {
	return &frameCurve{
		suffix:    SuffixGlare,
		curveType: "FCURVE_TYPE_GLARE",
		fields: func(f *models.Frame) ([]field, bool) {
			if len(f.Glare) == 0 {
				return nil, false
			}
			// 重複している場合は最初の要素のみ使用
			g := f.Glare[0]
			return []field{
				{"threshold", g.Threshold},
				{"subtractionColor", g.SubtractionColor},
				{"compositionIntensity", g.CompositionIntensity},
			}, true
		},
	}
}

// NewSoftFocusEmitter はソフトフォーカスのカーブを生成するEmitterを作成します
func NewSoftFocusEmitter() Emitter {
	return &frameCurve{
		suffix:    SuffixSoftFocus,
		curveType: "FCURVE_TYPE_SOFTFOCUS",
		fields: func(f *models.Frame) ([]field, bool) {
			if len(f.SoftFocus) == 0 {
				return nil, false
			}
			return []field{{"intensity", f.SoftFocus[0].Intensity}}, true
		},
	}
}

// NewDepthOfFieldEmitter は被写界深度のカーブを生成するEmitterを作成します
func NewDepthOfFieldEmitter() Emitter {
	return &frameCurve{
		suffix:    SuffixDepthOfField,
		curveType: "FCURVE_TYPE_DOF",
		fields: func(f *models.Frame) ([]field, bool) {
			if len(f.DepthOfField) == 0 {
				return nil, false
			}
			d := f.DepthOfField[0]
			return []field{
				{"focusDistance", d.FocusDistance},
				{"nearDistance", d.NearDistance},
				{"farDistance", d.FarDistance},
				{"blurMaxFar", d.BlurMaxFar},
				{"blurEdge", d.BlurEdge},
			}, true
		},
	}
}

// NewBrightRateEmitter は明るさ倍率 (bgbout) のカーブを生成するEmitterを作成します
func NewBrightRateEmitter() Emitter {
	return &frameCurve{
		suffix:    SuffixBrightRate,
		curveType: "FCURVE_TYPE_BRIGHT_RATE",
		fields: func(f *models.Frame) ([]field, bool) {
			gp, ok := f.FindGenericParam(brightRateParam)
			if !ok {
				return nil, false
			}
			// value はカンマ区切りで、先頭の値のみ使用
			value, _, _ := strings.Cut(gp.Value, ",")
			return []field{{brightRateParam, value}}, true
		},
	}
}

// NewZRangeEmitter はZレンジの固定カーブを生成するEmitterを作成します
func NewZRangeEmitter() Emitter {
	return &constCurve{
		suffix:    SuffixZRange,
		curveType: "FCURVE_TYPE_ZRANGE",
		record:    "1,1.000000,9000000.000000",
	}
}

// NewBCAdjustmentsEmitter は明るさ・コントラスト調整の固定カーブを生成するEmitterを作成します
func NewBCAdjustmentsEmitter() Emitter {
	return &constCurve{
		suffix:    SuffixBCAdjustments,
		curveType: "FCURVE_TYPE_BCADJUSTMENTS",
		record:    "0,0.00000,1.250000",
	}
}

// DefaultEmitters は出力順に並べた全カーブのEmitterを返します
func DefaultEmitters() []Emitter {
	return []Emitter{
		NewGlareEmitter(),
		NewSoftFocusEmitter(),
		NewDepthOfFieldEmitter(),
		NewBrightRateEmitter(),
		NewZRangeEmitter(),
		NewBCAdjustmentsEmitter(),
	}
}
