// Package models はfcvxfbinコマンドで使用するデータモデルを定義します
package models

// Frame はタイムライン上の1フレーム分のパラメータを表します
type Frame struct {
	No            string         `yaml:"no"` // no属性の生の値（省略時は空文字）
	GenericParams []GenericParam `yaml:"p_gp,omitempty"`
	Glare         []Glare        `yaml:"p_glare,omitempty"`
	SoftFocus     []SoftFocus    `yaml:"p_softfocus,omitempty"`
	DepthOfField  []DepthOfField `yaml:"p_dof,omitempty"`
}

// GenericParam は p_gp 要素の名前と値の組
type GenericParam struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Glare は p_glare 要素の属性
type Glare struct {
	Threshold            string `yaml:"threshold"`
	SubtractionColor     string `yaml:"subtractionColor"`
	CompositionIntensity string `yaml:"compositionIntensity"`
}

// SoftFocus は p_softfocus 要素の属性
type SoftFocus struct {
	Intensity string `yaml:"intensity"`
}

// DepthOfField は p_dof 要素の属性
type DepthOfField struct {
	FocusDistance string `yaml:"focusDistance"`
	NearDistance  string `yaml:"nearDistance"`
	FarDistance   string `yaml:"farDistance"`
	BlurMaxFar    string `yaml:"blurMaxFar"`
	BlurEdge      string `yaml:"blurEdge"`
}

// FindGenericParam は指定した名前を持つ最初の p_gp を返します
func (f *Frame) FindGenericParam(name string) (GenericParam, bool) {
	for _, gp := range f.GenericParams {
		if gp.Name == name {
			return gp, true
		}
	}
	return GenericParam{}, false
}

// Timeline は抽出結果とその入力元を表します
type Timeline struct {
	Source string  `yaml:"source"`
	Frames []Frame `yaml:"frames"`
}
