package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	fcverrors "github.com/shiroemons/go-fcvxfbin/internal/fcv/errors"
	"github.com/shiroemons/go-fcvxfbin/internal/fcv/models"
)

const testXML = `<camera><frame no="100"><setting><param><p_gp name="bgbout" value="0.75"/></param></setting></frame></camera>`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "cam01.xml")
	if err := os.WriteFile(path, []byte(testXML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCmd_Convert(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	outDir := filepath.Join(dir, "out")

	out, err := execute(t, input, "-o", outDir)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	outputPath := filepath.Join(outDir, "cam01.fcv.xfbin")
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Expected output file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("NUCC")) {
		t.Errorf("Expected NUCC magic, got %q", data[:4])
	}
	if !strings.Contains(out, "cam01_bright_rate") {
		t.Errorf("Expected summary to list cam01_bright_rate, got:\n%s", out)
	}

	// 生成したファイルの一覧表示
	out, err = execute(t, "list", outputPath)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Z:/anm/cam01/fcv/cam01_zrange.fcv") {
		t.Errorf("Unexpected listing:\n%s", out)
	}
}

func TestRootCmd_DryRun(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)

	if _, err := execute(t, "--dry-run", "-o", dir, input); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cam01.fcv.xfbin")); !os.IsNotExist(err) {
		t.Error("Output file should not exist in dry-run mode")
	}
}

func TestRootCmd_Dump(t *testing.T) {
	input := writeInput(t, t.TempDir())

	out, err := execute(t, "dump", input)
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if !strings.Contains(out, "source: cam01.xml") || !strings.Contains(out, "bgbout") {
		t.Errorf("Unexpected dump output:\n%s", out)
	}
}

func TestRootCmd_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"引数なし", []string{}},
		{"引数が多すぎる", []string{"a.xml", "b.xml"}},
		{"拡張子がxmlでない", []string{"camera.txt"}},
		{"大文字の拡張子", []string{"camera.XML"}},
		{"dumpの引数なし", []string{"dump"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, fcverrors.ErrUsage) {
				t.Errorf("Expected ErrUsage, got %v", err)
			}
		})
	}
}

func TestRootCmd_Version(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.HasPrefix(out, "fcvxfbin version ") {
		t.Errorf("Unexpected version output: %s", out)
	}
}

// executeWithStdout は標準出力をファイルに差し替えてコマンドを実行し、書き込まれた内容を返します
func executeWithStdout(t *testing.T, args ...string) (string, error) {
	t.Helper()
	stdoutFile, err := os.CreateTemp(t.TempDir(), "stdout")
	if err != nil {
		t.Fatal(err)
	}
	defer stdoutFile.Close()

	oldStdout := os.Stdout
	os.Stdout = stdoutFile
	defer func() { os.Stdout = oldStdout }()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	runErr := cmd.ExecuteContext(context.Background())

	data, err := os.ReadFile(stdoutFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	return string(data), runErr
}

func TestDumpCmd_DebugKeepsStdoutYAML(t *testing.T) {
	input := writeInput(t, t.TempDir())

	out, err := executeWithStdout(t, "dump", "-d", input)
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}

	var timeline models.Timeline
	if err := yaml.Unmarshal([]byte(out), &timeline); err != nil {
		t.Fatalf("stdout is not YAML: %v\n%s", err, out)
	}
	if timeline.Source != "cam01.xml" {
		t.Errorf("Expected source 'cam01.xml', got '%s'", timeline.Source)
	}
	if len(timeline.Frames) != 1 || timeline.Frames[0].No != "100" {
		t.Errorf("Unexpected frames: %+v", timeline.Frames)
	}
	// デバッグ出力は標準出力に混ざらない
	if strings.Contains(out, "を読み込みます") {
		t.Errorf("Debug output leaked into stdout:\n%s", out)
	}
}

func TestListCmd_DebugKeepsStdoutClean(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir)
	if _, err := execute(t, input, "-o", dir); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out, err := executeWithStdout(t, "list", "-d", filepath.Join(dir, "cam01.fcv.xfbin"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.HasPrefix(out, "XFBIN内のチャンク一覧:") {
		t.Errorf("Expected listing to start stdout, got:\n%s", out)
	}
	if strings.Contains(out, ": 5 ページ") {
		t.Errorf("Debug output leaked into stdout:\n%s", out)
	}
}
