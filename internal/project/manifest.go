package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a decoded ezlatexdoc.toml together with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
	// HasNFC is true when [output].nfc is set explicitly.
	HasNFC bool
}

type Config struct {
	Output OutputConfig `toml:"output"`
	Run    RunConfig    `toml:"run"`
}

type OutputConfig struct {
	Dir string `toml:"dir"` // база для относительных имён destination
	Src string `toml:"src"` // начальная привязка src_output
	Doc string `toml:"doc"` // начальная привязка doc_output
	NFC bool   `toml:"nfc"`
}

type RunConfig struct {
	Inputs []string `toml:"inputs"`
	Jobs   int      `toml:"jobs"`
}

// Load finds the manifest above startDir and decodes it. ok is false when
// there is no manifest.
func Load(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadFile decodes a manifest at an explicit path.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if cfg.Run.Jobs < 0 {
		return nil, fmt.Errorf("%s: [run].jobs must not be negative", path)
	}
	for i, in := range cfg.Run.Inputs {
		if strings.TrimSpace(in) == "" {
			return nil, fmt.Errorf("%s: [run].inputs[%d] is empty", path, i)
		}
	}
	for _, key := range []string{"src", "doc", "dir"} {
		if meta.IsDefined("output", key) && strings.TrimSpace(outputField(&cfg.Output, key)) == "" {
			return nil, fmt.Errorf("%s: [output].%s is empty", path, key)
		}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Config: cfg,
		HasNFC: meta.IsDefined("output", "nfc"),
	}, nil
}

func outputField(o *OutputConfig, key string) string {
	switch key {
	case "src":
		return o.Src
	case "doc":
		return o.Doc
	default:
		return o.Dir
	}
}

// OutputDir returns [output].dir resolved against the manifest root, or "".
func (m *Manifest) OutputDir() string {
	if m == nil || m.Config.Output.Dir == "" {
		return ""
	}
	return m.resolve(m.Config.Output.Dir)
}

// InputPaths resolves [run].inputs against the manifest root.
func (m *Manifest) InputPaths() []string {
	if m == nil {
		return nil
	}
	paths := make([]string, len(m.Config.Run.Inputs))
	for i, in := range m.Config.Run.Inputs {
		paths[i] = m.resolve(in)
	}
	return paths
}

func (m *Manifest) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, p)
}
