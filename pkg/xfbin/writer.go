package xfbin

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// fileHeader はファイル先頭の固定ヘッダ (28バイト)
type fileHeader struct {
	Magic          [4]byte
	Version        uint32
	_              [8]byte
	ChunkTableSize uint32
	MinPageSize    uint32
	Version2       uint16
	Unknown        uint16
}

// tableCounts はチャンクテーブル先頭のカウント群
type tableCounts struct {
	ChunkTypeCount     uint32
	ChunkTypeSize      uint32
	FilePathCount      uint32
	FilePathSize       uint32
	ChunkNameCount     uint32
	ChunkNameSize      uint32
	ChunkMapCount      uint32
	ChunkMapSize       uint32
	ChunkMapIndexCount uint32
	ExtraIndicesCount  uint32
}

// chunkMap は種別・パス・名前の各文字列テーブルへのインデックスの組
type chunkMap struct {
	TypeIndex uint32
	PathIndex uint32
	NameIndex uint32
}

// chunkHeader は各チャンクの前に置かれるヘッダ
type chunkHeader struct {
	Size     uint32
	MapIndex uint32
	Version  uint16
	Unknown  uint16
}

// stringTable は出現順を保った重複なしの文字列テーブル
type stringTable struct {
	values []string
	index  map[string]uint32
}

func newStringTable() *stringTable {
	return &stringTable{index: make(map[string]uint32)}
}

func (t *stringTable) add(s string) uint32 {
	if i, ok := t.index[s]; ok {
		return i
	}
	i := uint32(len(t.values))
	t.values = append(t.values, s)
	t.index[s] = i
	return i
}

// size はNUL終端込みのバイト数を返します
func (t *stringTable) size() int {
	n := 0
	for _, s := range t.values {
		n += len(s) + 1
	}
	return n
}

func (t *stringTable) writeTo(buf *bytes.Buffer) {
	for _, s := range t.values {
		buf.WriteString(s)
		buf.WriteByte(0)
	}
}

// chunkTable はページ群から組み立てたチャンクテーブル
type chunkTable struct {
	types    *stringTable
	paths    *stringTable
	names    *stringTable
	maps     []chunkMap
	mapIndex map[chunkMap]uint32
	indices  []uint32
	// pageMaps はページごとのローカルなチャンクマップ数
	pageMaps []int
}

func newChunkTable() *chunkTable {
	return &chunkTable{
		types:    newStringTable(),
		paths:    newStringTable(),
		names:    newStringTable(),
		mapIndex: make(map[chunkMap]uint32),
	}
}

func (t *chunkTable) addMap(info StructInfo) uint32 {
	m := chunkMap{
		TypeIndex: t.types.add(info.ChunkType),
		PathIndex: t.paths.add(info.FilePath),
		NameIndex: t.names.add(info.ChunkName),
	}
	if i, ok := t.mapIndex[m]; ok {
		return i
	}
	i := uint32(len(t.maps))
	t.maps = append(t.maps, m)
	t.mapIndex[m] = i
	return i
}

// addPage はページのチャンクマップ (Null, 構造体..., Page) を登録します
func (t *chunkTable) addPage(p Page) error {
	local := []uint32{t.addMap(StructInfo{ChunkType: ChunkTypeNull})}
	for i, s := range p.Structs {
		if s == nil {
			return fmt.Errorf("%w: ページ %d の構造体 %d が nil です", ErrInvalidStruct, len(t.pageMaps), i)
		}
		info := s.Info()
		switch info.ChunkType {
		case "", ChunkTypeNull, ChunkTypePage:
			return fmt.Errorf("%w: %s の種別 %q", ErrInvalidStruct, info.ChunkName, info.ChunkType)
		}
		local = append(local, t.addMap(info))
	}
	local = append(local, t.addMap(StructInfo{ChunkType: ChunkTypePage, ChunkName: pageChunkName}))

	t.indices = append(t.indices, local...)
	t.pageMaps = append(t.pageMaps, len(local))
	return nil
}

func (t *chunkTable) minPageSize() uint32 {
	n := 0
	for _, c := range t.pageMaps {
		n = max(n, c)
	}
	return uint32(n)
}

// marshal はカウント群からチャンクマップインデックスまでを書き出します
func (t *chunkTable) marshal() []byte {
	var buf bytes.Buffer

	counts := tableCounts{
		ChunkTypeCount:     uint32(len(t.types.values)),
		ChunkTypeSize:      uint32(t.types.size()),
		FilePathCount:      uint32(len(t.paths.values)),
		FilePathSize:       uint32(t.paths.size()),
		ChunkNameCount:     uint32(len(t.names.values)),
		ChunkNameSize:      uint32(t.names.size()),
		ChunkMapCount:      uint32(len(t.maps)),
		ChunkMapSize:       uint32(len(t.maps) * 12),
		ChunkMapIndexCount: uint32(len(t.indices)),
		ExtraIndicesCount:  0,
	}
	// bytes.Buffer への書き込みは失敗しない
	_ = binary.Write(&buf, byteOrder, counts)

	t.types.writeTo(&buf)
	t.paths.writeTo(&buf)
	t.names.writeTo(&buf)

	// 文字列テーブルの後ろは4バイト境界に揃える
	for buf.Len()%4 != 0 {
		buf.WriteByte(0)
	}

	_ = binary.Write(&buf, byteOrder, t.maps)
	_ = binary.Write(&buf, byteOrder, t.indices)

	return buf.Bytes()
}

// Marshal はコンテナをXFBINのバイト列に変換します
func Marshal(x *Xfbin) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, x); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write はコンテナをXFBIN形式で w に書き込みます
func Write(w io.Writer, x *Xfbin) error {
	table := newChunkTable()
	for _, p := range x.Pages {
		if err := table.addPage(p); err != nil {
			return err
		}
	}
	tableData := table.marshal()

	header := fileHeader{
		Version:        Version,
		ChunkTableSize: uint32(len(tableData)),
		MinPageSize:    table.minPageSize(),
		Version2:       Version,
	}
	copy(header.Magic[:], Magic)

	var buf bytes.Buffer
	_ = binary.Write(&buf, byteOrder, header)
	buf.Write(tableData)

	for _, p := range x.Pages {
		writePage(&buf, p)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("XFBINの書き込みに失敗しました: %w", err)
	}
	return nil
}

// writePage はNull、構造体、Pageの順にチャンクを書き出します。
// チャンクヘッダのマップインデックスはページ内のローカル番号です。
func writePage(buf *bytes.Buffer, p Page) {
	writeChunk(buf, 0, 0, nil)

	for i, s := range p.Structs {
		writeChunk(buf, uint32(i+1), s.ChunkVersion(), s.MarshalChunk())
	}

	mapCount := uint32(len(p.Structs) + 2)
	pageData := make([]byte, 8)
	byteOrder.PutUint32(pageData, mapCount)
	// extra indices は使わない
	byteOrder.PutUint32(pageData[4:], 0)
	writeChunk(buf, mapCount-1, Version, pageData)
}

func writeChunk(buf *bytes.Buffer, mapIndex uint32, version uint16, data []byte) {
	_ = binary.Write(buf, byteOrder, chunkHeader{
		Size:     uint32(len(data)),
		MapIndex: mapIndex,
		Version:  version,
	})
	buf.Write(data)
}
