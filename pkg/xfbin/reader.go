package xfbin

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Read は r からXFBINを読み込みます
func Read(r io.Reader) (*Xfbin, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("XFBINの読み込みに失敗しました: %w", err)
	}
	return Unmarshal(data)
}

// Unmarshal はXFBINのバイト列を解析します
func Unmarshal(data []byte) (*Xfbin, error) {
	reader := bytes.NewReader(data)

	var header fileHeader
	if err := readBinary(reader, &header); err != nil {
		return nil, err
	}
	if string(header.Magic[:]) != Magic {
		return nil, ErrInvalidMagic
	}

	if int64(header.ChunkTableSize) > int64(reader.Len()) {
		return nil, fmt.Errorf("%w: チャンクテーブル", ErrTruncated)
	}
	tableData := make([]byte, header.ChunkTableSize)
	if _, err := io.ReadFull(reader, tableData); err != nil {
		return nil, fmt.Errorf("%w: チャンクテーブル: %w", ErrTruncated, err)
	}
	table, err := parseChunkTable(tableData)
	if err != nil {
		return nil, err
	}

	x := &Xfbin{}
	var structs []Struct
	pageOffset := 0

	for reader.Len() > 0 {
		var ch chunkHeader
		if err := readBinary(reader, &ch); err != nil {
			return nil, err
		}
		if int64(ch.Size) > int64(reader.Len()) {
			return nil, fmt.Errorf("%w: チャンク本体", ErrTruncated)
		}
		body := make([]byte, ch.Size)
		if _, err := io.ReadFull(reader, body); err != nil {
			return nil, fmt.Errorf("%w: チャンク本体: %w", ErrTruncated, err)
		}

		info, err := table.lookup(pageOffset + int(ch.MapIndex))
		if err != nil {
			return nil, err
		}

		switch info.ChunkType {
		case ChunkTypeNull:
			// ページ先頭の空チャンク
		case ChunkTypePage:
			if len(body) < 4 {
				return nil, fmt.Errorf("%w: nuccChunkPage", ErrTruncated)
			}
			x.Pages = append(x.Pages, Page{Structs: structs})
			structs = nil
			pageOffset += int(byteOrder.Uint32(body))
		case ChunkTypeBinary:
			if len(body) < 4 {
				return nil, fmt.Errorf("%w: %s", ErrTruncated, info.ChunkName)
			}
			size := byteOrder.Uint32(body)
			if int(size) > len(body)-4 {
				return nil, fmt.Errorf("%w: %s", ErrTruncated, info.ChunkName)
			}
			structs = append(structs, &Binary{
				StructInfo: info,
				Version:    ch.Version,
				Data:       body[4 : 4+size],
			})
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedChunk, info.ChunkType)
		}
	}

	if len(structs) > 0 {
		return nil, fmt.Errorf("%w: 最後のページがnuccChunkPageで閉じられていません", ErrTruncated)
	}

	return x, nil
}

// parsedTable は読み込んだチャンクテーブル
type parsedTable struct {
	types   []string
	paths   []string
	names   []string
	maps    []chunkMap
	indices []uint32
}

func parseChunkTable(data []byte) (*parsedTable, error) {
	reader := bytes.NewReader(data)

	var counts tableCounts
	if err := readBinary(reader, &counts); err != nil {
		return nil, err
	}

	t := &parsedTable{}
	var err error
	if t.types, err = readStrings(reader, counts.ChunkTypeCount, counts.ChunkTypeSize); err != nil {
		return nil, err
	}
	if t.paths, err = readStrings(reader, counts.FilePathCount, counts.FilePathSize); err != nil {
		return nil, err
	}
	if t.names, err = readStrings(reader, counts.ChunkNameCount, counts.ChunkNameSize); err != nil {
		return nil, err
	}

	// 4バイト境界までのパディングを読み飛ばす
	stringsSize := int(counts.ChunkTypeSize + counts.FilePathSize + counts.ChunkNameSize)
	if pad := (4 - (tableCountsSize+stringsSize)%4) % 4; pad > 0 {
		if _, err := reader.Seek(int64(pad), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
		}
	}

	if int64(counts.ChunkMapCount)*12+int64(counts.ChunkMapIndexCount)*4 > int64(reader.Len()) {
		return nil, fmt.Errorf("%w: チャンクマップ", ErrTruncated)
	}
	t.maps = make([]chunkMap, counts.ChunkMapCount)
	if err := readBinary(reader, t.maps); err != nil {
		return nil, err
	}
	// extra indices は (uint32, uint32) の組で、このパッケージでは使わない
	if _, err := reader.Seek(int64(counts.ExtraIndicesCount)*8, io.SeekCurrent); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}
	t.indices = make([]uint32, counts.ChunkMapIndexCount)
	if err := readBinary(reader, t.indices); err != nil {
		return nil, err
	}

	return t, nil
}

// lookup はグローバルなチャンクマップインデックス番号から記述子を求めます
func (t *parsedTable) lookup(i int) (StructInfo, error) {
	if i < 0 || i >= len(t.indices) {
		return StructInfo{}, fmt.Errorf("%w: インデックス %d", ErrInvalidChunkMap, i)
	}
	mi := t.indices[i]
	if int(mi) >= len(t.maps) {
		return StructInfo{}, fmt.Errorf("%w: マップ %d", ErrInvalidChunkMap, mi)
	}
	m := t.maps[mi]
	if int(m.TypeIndex) >= len(t.types) || int(m.PathIndex) >= len(t.paths) || int(m.NameIndex) >= len(t.names) {
		return StructInfo{}, fmt.Errorf("%w: マップ %d の文字列参照", ErrInvalidChunkMap, mi)
	}
	return StructInfo{
		ChunkType: t.types[m.TypeIndex],
		FilePath:  t.paths[m.PathIndex],
		ChunkName: t.names[m.NameIndex],
	}, nil
}

// readStrings はNUL終端文字列を count 個、合計 size バイト読み込みます
func readStrings(reader *bytes.Reader, count, size uint32) ([]string, error) {
	if int64(size) > int64(reader.Len()) {
		return nil, fmt.Errorf("%w: 文字列テーブル", ErrTruncated)
	}
	raw := make([]byte, size)
	if _, err := io.ReadFull(reader, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncated, err)
	}

	var values []string
	for len(values) < int(count) {
		n := bytes.IndexByte(raw, 0)
		if n < 0 {
			return nil, fmt.Errorf("%w: 文字列テーブルの終端がありません", ErrTruncated)
		}
		values = append(values, string(raw[:n]))
		raw = raw[n+1:]
	}
	return values, nil
}

func readBinary(reader *bytes.Reader, v any) error {
	if err := binary.Read(reader, byteOrder, v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %w", ErrTruncated, err)
		}
		return err
	}
	return nil
}
