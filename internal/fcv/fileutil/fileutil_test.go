package fileutil

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shiroemons/go-fcvxfbin/internal/fcv/mocks"
)

func TestIsXMLFile(t *testing.T) {
	tests := []struct {
		filename string
		expected bool
	}{
		{"camera.xml", true},
		{"/path/to/cam01.xml", true},
		{"camera.XML", false},
		{"camera.xml.bak", false},
		{"camera", false},
		{"xml", false},
	}

	for _, test := range tests {
		result := IsXMLFile(test.filename)
		if result != test.expected {
			t.Errorf("IsXMLFile(%s) = %v; want %v", test.filename, result, test.expected)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"camera.xml", "camera"},
		{"/path/to/cam01.xml", "cam01"},
		{"cut.v2.xml", "cut.v2"},
		{"noext", "noext"},
	}

	for _, test := range tests {
		result := BaseName(test.input)
		if result != test.expected {
			t.Errorf("BaseName(%s) = %s; want %s", test.input, result, test.expected)
		}
	}
}

func TestGenerateOutputFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"camera.xml", "camera.fcv.xfbin"},
		{"/path/to/cam01.xml", "cam01.fcv.xfbin"},
		{"cut.v2.xml", "cut.v2.fcv.xfbin"},
	}

	for _, test := range tests {
		result := GenerateOutputFilename(test.input)
		if result != test.expected {
			t.Errorf("GenerateOutputFilename(%s) = %s; want %s", test.input, result, test.expected)
		}
	}
}

func TestSaveFile(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockFileSystem)
		wantError error
	}{
		{
			name:      "正常に保存",
			setupMock: func(fs *mocks.MockFileSystem) {},
		},
		{
			name: "書き込みエラー",
			setupMock: func(fs *mocks.MockFileSystem) {
				fs.WriteError = errors.New("disk full")
			},
			wantError: ErrCreateDirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := mocks.NewMockFileSystem()
			tt.setupMock(fs)

			err := SaveFile(fs, "out/dir/camera.fcv.xfbin", []byte("data"))

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("Expected error %v, got %v", tt.wantError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SaveFile failed: %v", err)
			}
			if !fs.Dirs["out/dir"] {
				t.Error("Expected output directory to be created")
			}
			if string(fs.Files["out/dir/camera.fcv.xfbin"]) != "data" {
				t.Errorf("Unexpected file content: %q", fs.Files["out/dir/camera.fcv.xfbin"])
			}
		})
	}
}

func TestOSFileSystem(t *testing.T) {
	tmpDir := t.TempDir()
	fs := NewOSFileSystem()

	path := filepath.Join(tmpDir, "nested", "camera.fcv.xfbin")
	content := []byte{'N', 'U', 'C', 'C', 0x00}

	if fs.FileExists(path) {
		t.Fatal("FileExists returned true before writing")
	}

	if err := SaveFile(fs, path, content); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	if !fs.FileExists(path) {
		t.Error("FileExists returned false for written file")
	}
	// ディレクトリはファイルとして扱わない
	if fs.FileExists(filepath.Dir(path)) {
		t.Error("FileExists returned true for directory")
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Errorf("ReadFile = %v, want %v", data, content)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != int64(len(content)) {
		t.Errorf("Expected size %d, got %d", len(content), info.Size())
	}
}
