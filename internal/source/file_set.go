package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet manages a collection of loaded documents and resolves byte offsets.
type FileSet struct {
	files   []File
	baseDir string // базовая директория для относительных путей
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
	}
}

// NewFileSetWithBase создаёт FileSet с заданной базовой директорией.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir возвращает текущую базовую директорию.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fileSet.baseDir
}

// Add stores a document from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a document with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	return id
}

// Load reads a document from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	return fileSet.LoadWith(path, LoadOptions{})
}

// LoadWith is Load with optional extra normalisation.
func (fileSet *FileSet) LoadWith(path string, opts LoadOptions) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalize(content, opts)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory document (stdin, test) with the FileVirtual flag.
// Content goes through the same normalisation as Load.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.AddVirtualWith(name, content, LoadOptions{})
}

// AddVirtualWith is AddVirtual with optional extra normalisation.
func (fileSet *FileSet) AddVirtualWith(name string, content []byte, opts LoadOptions) FileID {
	content, flags := normalize(content, opts)
	return fileSet.Add(name, content, flags|FileVirtual)
}

func normalize(content []byte, opts LoadOptions) ([]byte, FileFlags) {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	if opts.NFC {
		var changed bool
		content, changed = normalizeNFC(content)
		if changed {
			flags |= FileNormalizedNFC
		}
	}
	return content, flags
}

// Get returns the document for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// Len reports how many documents were added.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return f.LineCol(span.Start), f.LineCol(span.End)
}

// LineCol converts a byte offset inside the document into a 1-based position.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// GetLine возвращает строку с заданным номером (1-based) из файла, без '\n'.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case lineNum-2 < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if lineNum-1 < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}
	if start > lenContent {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath форматирует путь к файлу в зависимости от режима.
// mode: "absolute", "relative", "basename", "auto"
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path

	case "relative":
		if f.Flags&FileVirtual != 0 {
			return f.Path
		}
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path

	case "basename":
		return filepath.Base(f.Path)

	case "auto":
		// Auto: если путь короткий или относительный - как есть, иначе basename
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)

	default:
		return f.Path
	}
}
