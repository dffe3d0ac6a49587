// Package parser はカメラポストエフェクトXMLの解析を行います
package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	fcverrors "github.com/shiroemons/go-fcvxfbin/internal/fcv/errors"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/models"
)

// 認識する要素名
const (
	elemFrame     = "frame"
	elemSetting   = "setting"
	elemParam     = "param"
	elemGP        = "p_gp"
	elemGlare     = "p_glare"
	elemSoftFocus = "p_softfocus"
	elemDOF       = "p_dof"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TimelineParser はXMLからフレームのタイムラインを抽出します
type TimelineParser struct{}

// NewTimelineParser は新しいTimelineParserを作成します
func NewTimelineParser() *TimelineParser {
	return &TimelineParser{}
}

// scope は現在位置を囲んでいる frame / setting / param 要素の深さ
type scope struct {
	frame   int
	setting int
	param   int
}

// enter は開始タグでスコープを更新します
func (s *scope) enter(name string) {
	switch name {
	case elemFrame:
		s.frame++
	case elemSetting:
		s.setting++
	case elemParam:
		s.param++
	}
}

// leave は終了タグでスコープを更新します。
// 終了タグの対応はデコーダが検証済みなので負にはなりません。
func (s *scope) leave(name string) {
	switch name {
	case elemFrame:
		s.frame--
	case elemSetting:
		s.setting--
	case elemParam:
		s.param--
	}
}

// Extract はXML文書全体を読み込み、frame要素ごとのパラメータを文書順に返します。
// 属性値は文字列のまま保持し、数値としての検証はカーブ生成時に行います。
func (p *TimelineParser) Extract(r io.Reader) ([]models.Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.CharsetReader = charsetReader

	var frames []models.Frame
	var sc scope

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, _ := decoder.InputPos()
			return nil, fcverrors.NewParseError("", line, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case elemFrame:
				sc.enter(elemFrame)
				frames = append(frames, models.Frame{No: attrValue(t, "no")})
			case elemSetting, elemParam:
				sc.enter(t.Name.Local)
			case elemGP, elemGlare, elemSoftFocus, elemDOF:
				if sc.param == 0 {
					continue
				}
				if sc.frame == 0 {
					line, _ := decoder.InputPos()
					return nil, fcverrors.NewParseError("", line, fmt.Errorf("%w: <%s>", ErrParamOutsideFrame, t.Name.Local))
				}
				appendParam(&frames[len(frames)-1], t)
			}
		case xml.EndElement:
			sc.leave(t.Name.Local)
		}
	}

	return frames, nil
}

// ExtractString は文字列のXMLからタイムラインを抽出します
func (p *TimelineParser) ExtractString(s string) ([]models.Frame, error) {
	return p.Extract(strings.NewReader(s))
}

// appendParam はパラメータ要素を対応するリストに追加します
func appendParam(frame *models.Frame, e xml.StartElement) {
	switch e.Name.Local {
	case elemGP:
		frame.GenericParams = append(frame.GenericParams, decodeGenericParam(e))
	case elemGlare:
		frame.Glare = append(frame.Glare, decodeGlare(e))
	case elemSoftFocus:
		frame.SoftFocus = append(frame.SoftFocus, decodeSoftFocus(e))
	case elemDOF:
		frame.DepthOfField = append(frame.DepthOfField, decodeDepthOfField(e))
	}
}

func decodeGenericParam(e xml.StartElement) models.GenericParam {
	var gp models.GenericParam
	for _, a := range e.Attr {
		switch a.Name.Local {
		case "name":
			gp.Name = a.Value
		case "value":
			gp.Value = a.Value
		}
	}
	return gp
}

func decodeGlare(e xml.StartElement) models.Glare {
	var g models.Glare
	for _, a := range e.Attr {
		switch a.Name.Local {
		case "threshold":
			g.Threshold = a.Value
		case "subtractionColor":
			g.SubtractionColor = a.Value
		case "compositionIntensity":
			g.CompositionIntensity = a.Value
		}
	}
	return g
}

func decodeSoftFocus(e xml.StartElement) models.SoftFocus {
	return models.SoftFocus{Intensity: attrValue(e, "intensity")}
}

func decodeDepthOfField(e xml.StartElement) models.DepthOfField {
	var d models.DepthOfField
	for _, a := range e.Attr {
		switch a.Name.Local {
		case "focusDistance":
			d.FocusDistance = a.Value
		case "nearDistance":
			d.NearDistance = a.Value
		case "farDistance":
			d.FarDistance = a.Value
		case "blurMaxFar":
			d.BlurMaxFar = a.Value
		case "blurEdge":
			d.BlurEdge = a.Value
		}
	}
	return d
}

// attrValue は属性値を返します（重複時は最後の値）
func attrValue(e xml.StartElement, name string) string {
	var v string
	for _, a := range e.Attr {
		if a.Name.Local == name {
			v = a.Value
		}
	}
	return v
}

// charsetReader はXML宣言の encoding を golang.org/x/text で解釈します
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCharset, label)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
