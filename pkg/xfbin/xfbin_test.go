package xfbin

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func newTestBinary(name, path string, data []byte) *Binary {
	return &Binary{
		StructInfo: StructInfo{
			ChunkName: name,
			ChunkType: ChunkTypeBinary,
			FilePath:  path,
		},
		Version: Version,
		Data:    data,
	}
}

func TestMarshal_Header(t *testing.T) {
	x := &Xfbin{}
	x.AddPage(newTestBinary("a_glare", "Z:/x.fcv", []byte("abc")))

	data, err := Marshal(x)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	if string(data[0:4]) != Magic {
		t.Errorf("magic = %q, want %q", data[0:4], Magic)
	}
	if v := binary.BigEndian.Uint32(data[4:8]); v != Version {
		t.Errorf("version = %d, want %d", v, Version)
	}
	if !bytes.Equal(data[8:16], make([]byte, 8)) {
		t.Errorf("padding = % x, want zeros", data[8:16])
	}

	// カウント40 + 文字列69 + パディング3 + マップ36 + インデックス12
	if v := binary.BigEndian.Uint32(data[16:20]); v != 160 {
		t.Errorf("chunk table size = %d, want 160", v)
	}
	// Null, Binary, Page の3マップ
	if v := binary.BigEndian.Uint32(data[20:24]); v != 3 {
		t.Errorf("min page size = %d, want 3", v)
	}
	if v := binary.BigEndian.Uint16(data[24:26]); v != Version {
		t.Errorf("version2 = %d, want %d", v, Version)
	}

	// ヘッダ + テーブル + Null(12) + Binary(12+4+3) + Page(12+8)
	want := headerSize + 160 + chunkHeaderSize + (chunkHeaderSize + 7) + (chunkHeaderSize + 8)
	if len(data) != want {
		t.Errorf("len(data) = %d, want %d", len(data), want)
	}
}

func TestMarshal_Empty(t *testing.T) {
	data, err := Marshal(&Xfbin{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if len(data) != headerSize+tableCountsSize {
		t.Errorf("len(data) = %d, want %d", len(data), headerSize+tableCountsSize)
	}

	x, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if len(x.Pages) != 0 {
		t.Errorf("pages = %d, want 0", len(x.Pages))
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	x := &Xfbin{}
	x.AddPage(newTestBinary("s_glare", "Z:/anm/s/fcv/s_glare.fcv", []byte("glare\r\n")))
	x.AddPage(newTestBinary("s_dof", "Z:/anm/s/fcv/s_dof.fcv", []byte("dof")))
	x.AddPage(
		newTestBinary("s_zrange", "Z:/anm/s/fcv/s_zrange.fcv", []byte("z")),
		newTestBinary("s_bcadjustments", "Z:/anm/s/fcv/s_bcadjustments.fcv", []byte{}),
	)

	data, err := Marshal(x)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if len(got.Pages) != len(x.Pages) {
		t.Fatalf("pages = %d, want %d", len(got.Pages), len(x.Pages))
	}
	if got.StructCount() != 4 {
		t.Errorf("StructCount() = %d, want 4", got.StructCount())
	}

	for i, page := range x.Pages {
		if len(got.Pages[i].Structs) != len(page.Structs) {
			t.Fatalf("page %d: structs = %d, want %d", i, len(got.Pages[i].Structs), len(page.Structs))
		}
		for j, s := range page.Structs {
			want := s.(*Binary)
			b, ok := got.Pages[i].Structs[j].(*Binary)
			if !ok {
				t.Fatalf("page %d struct %d: type %T", i, j, got.Pages[i].Structs[j])
			}
			if b.StructInfo != want.StructInfo {
				t.Errorf("page %d struct %d: info = %+v, want %+v", i, j, b.StructInfo, want.StructInfo)
			}
			if b.Version != Version {
				t.Errorf("page %d struct %d: version = %d, want %d", i, j, b.Version, Version)
			}
			if !bytes.Equal(b.Data, want.Data) {
				t.Errorf("page %d struct %d: data = %q, want %q", i, j, b.Data, want.Data)
			}
		}
	}
}

func TestWrite_InvalidStruct(t *testing.T) {
	tests := []struct {
		name string
		s    Struct
	}{
		{"nil", nil},
		{"種別なし", &Binary{StructInfo: StructInfo{ChunkName: "x"}}},
		{"Page種別", &Binary{StructInfo: StructInfo{ChunkName: "x", ChunkType: ChunkTypePage}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := &Xfbin{}
			x.AddPage(tt.s)
			var buf bytes.Buffer
			err := Write(&buf, x)
			if !errors.Is(err, ErrInvalidStruct) {
				t.Errorf("Write() error = %v, want ErrInvalidStruct", err)
			}
			if buf.Len() != 0 {
				t.Errorf("Write() wrote %d bytes on error", buf.Len())
			}
		})
	}
}

func TestUnmarshal_Errors(t *testing.T) {
	x := &Xfbin{}
	x.AddPage(newTestBinary("a", "b", []byte("payload")))
	valid, err := Marshal(x)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	badMagic := bytes.Clone(valid)
	copy(badMagic, "XXXX")

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"空データ", []byte{}, ErrTruncated},
		{"マジック不一致", badMagic, ErrInvalidMagic},
		{"ヘッダ途中", valid[:10], ErrTruncated},
		{"テーブル途中", valid[:headerSize+20], ErrTruncated},
		{"チャンク途中", valid[:len(valid)-4], ErrTruncated},
		{"Pageチャンクなし", valid[:len(valid)-(chunkHeaderSize+8)], ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal(tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRead(t *testing.T) {
	x := &Xfbin{}
	x.AddPage(newTestBinary("a", "b", []byte("c")))
	var buf bytes.Buffer
	if err := Write(&buf, x); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if got.StructCount() != 1 {
		t.Errorf("StructCount() = %d, want 1", got.StructCount())
	}
}

func TestBinary_MarshalChunk(t *testing.T) {
	b := newTestBinary("a", "b", []byte{0xAA, 0xBB})
	want := []byte{0x00, 0x00, 0x00, 0x02, 0xAA, 0xBB}
	if got := b.MarshalChunk(); !bytes.Equal(got, want) {
		t.Errorf("MarshalChunk() = % x, want % x", got, want)
	}
}
