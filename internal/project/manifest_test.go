package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `
[output]
dir = "build"
src = "pkg.sty"
doc = "pkg.doc.tex"
nfc = true

[run]
inputs = ["src/pkg.dtx", "/abs/other.dtx"]
jobs = 3
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Root != root && !strings.HasSuffix(m.Root, filepath.Base(root)) {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	if m.Config.Output.Src != "pkg.sty" || m.Config.Output.Doc != "pkg.doc.tex" || !m.Config.Output.NFC || !m.HasNFC {
		t.Fatalf("output config = %+v", m.Config.Output)
	}
	if m.Config.Run.Jobs != 3 {
		t.Fatalf("jobs = %d", m.Config.Run.Jobs)
	}
	if got := m.OutputDir(); got != filepath.Join(m.Root, "build") {
		t.Fatalf("OutputDir = %q", got)
	}
	inputs := m.InputPaths()
	if len(inputs) != 2 || inputs[0] != filepath.Join(m.Root, "src", "pkg.dtx") || inputs[1] != filepath.FromSlash("/abs/other.dtx") {
		t.Fatalf("InputPaths = %v", inputs)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// TempDir может оказаться внутри каталога с манифестом только в очень странном окружении
	if ok {
		t.Skip("a parent directory already holds " + ManifestName)
	}
	var m *Manifest
	if m.OutputDir() != "" || m.InputPaths() != nil {
		t.Fatal("nil manifest must resolve to nothing")
	}
}

func TestLoadFileRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "[output]\nsrc = \"a\"\ncolour = \"red\"\n", "unknown keys: output.colour"},
		{"unknown table", "[publish]\nurl = \"x\"\n", "unknown keys: publish"},
		{"negative jobs", "[run]\njobs = -1\n", "[run].jobs must not be negative"},
		{"empty input", "[run]\ninputs = [\"a.dtx\", \" \"]\n", "[run].inputs[1] is empty"},
		{"empty src", "[output]\nsrc = \"\"\n", "[output].src is empty"},
		{"bad toml", "[output\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.content)
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("LoadFile error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestEmptyManifestIsValid(t *testing.T) {
	m, err := LoadFile(writeManifest(t, t.TempDir(), ""))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if m.HasNFC || m.OutputDir() != "" || len(m.InputPaths()) != 0 {
		t.Fatalf("unexpected manifest %+v", m)
	}
}

func TestPathDigest(t *testing.T) {
	dir := t.TempDir()
	a, err := PathDigest(filepath.Join(dir, "x", "..", "doc.dtx"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := PathDigest(filepath.Join(dir, "doc.dtx"))
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatal("equivalent paths must share a digest")
	}
	if len(a.String()) != 64 {
		t.Fatalf("hex digest %q", a.String())
	}
}
