// Package xfbin はCyberConnect2製ゲームで使われるXFBIN (NUCC) コンテナを読み書きするためのパッケージです。
//
// コンテナはページの並びで構成され、各ページは1つ以上のチャンク (構造体) を保持します。
// このパッケージが扱うチャンク種別:
//   - nuccChunkNull: 各ページの先頭に置かれる空チャンク
//   - nuccChunkBinary: 任意のバイト列を保持するチャンク
//   - nuccChunkPage: 各ページの終端を示すチャンク
//
// 基本的な使い方:
//
//	x := &xfbin.Xfbin{}
//	x.AddPage(&xfbin.Binary{
//	    StructInfo: xfbin.StructInfo{
//	        ChunkName: "sample_glare",
//	        ChunkType: xfbin.ChunkTypeBinary,
//	        FilePath:  "Z:/anm/sample/fcv/sample_glare.fcv",
//	    },
//	    Version: xfbin.Version,
//	    Data:    payload,
//	})
//	data, err := xfbin.Marshal(x)
package xfbin

import (
	"encoding/binary"
)

// NUCC形式の定数
const (
	// Magic はXFBINファイルの識別子
	Magic = "NUCC"

	// Version はヘッダおよびチャンクに書き込むフォーマットバージョン
	Version = 121

	// headerSize は固定ヘッダのバイト数
	headerSize = 28

	// chunkHeaderSize はチャンクヘッダ (size, map index, version, unk) のバイト数
	chunkHeaderSize = 12

	// tableCountsSize はチャンクテーブル先頭のカウント群 (uint32 x 10) のバイト数
	tableCountsSize = 40
)

// チャンク種別
const (
	ChunkTypeNull   = "nuccChunkNull"
	ChunkTypeBinary = "nuccChunkBinary"
	ChunkTypePage   = "nuccChunkPage"
)

// pageChunkName はnuccChunkPageのチャンク名
const pageChunkName = "Page0"

var byteOrder = binary.BigEndian

// StructInfo はチャンクの名前・種別・仮想パスを表します
type StructInfo struct {
	ChunkName string
	ChunkType string
	FilePath  string
}

// Struct はページに格納されるチャンクのインターフェース
type Struct interface {
	// Info はチャンクの記述子を返します
	Info() StructInfo

	// ChunkVersion はチャンクヘッダに書き込むバージョンを返します
	ChunkVersion() uint16

	// MarshalChunk はチャンク本体のバイト列を返します
	MarshalChunk() []byte
}

// Binary はnuccChunkBinaryチャンクを表します
type Binary struct {
	StructInfo
	Version uint16
	Data    []byte
}

// Info はチャンクの記述子を返します
func (b *Binary) Info() StructInfo {
	return b.StructInfo
}

// ChunkVersion はチャンクのバージョンを返します
func (b *Binary) ChunkVersion() uint16 {
	return b.Version
}

// MarshalChunk は長さ (uint32) に続けてデータを並べたバイト列を返します
func (b *Binary) MarshalChunk() []byte {
	buf := make([]byte, 4+len(b.Data))
	byteOrder.PutUint32(buf, uint32(len(b.Data)))
	copy(buf[4:], b.Data)
	return buf
}

// Page はコンテナ内の1ページ
type Page struct {
	Structs []Struct
}

// Xfbin はコンテナ全体を表します
type Xfbin struct {
	Pages []Page
}

// AddPage は構造体を1ページにまとめて末尾に追加します
func (x *Xfbin) AddPage(structs ...Struct) {
	x.Pages = append(x.Pages, Page{Structs: structs})
}

// StructCount は全ページの構造体数を返します
func (x *Xfbin) StructCount() int {
	n := 0
	for _, p := range x.Pages {
		n += len(p.Structs)
	}
	return n
}
