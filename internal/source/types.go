package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a loaded document.
	FileFlags uint8
)

// NoFile marks spans that do not point into any document.
const NoFile = ^FileID(0)

const (
	// FileVirtual indicates the document was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures metadata and content for a single document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a document.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}

// LoadOptions tweaks how FileSet.LoadWith normalises document bytes.
type LoadOptions struct {
	// NFC recomposes the text into Unicode normalisation form C.
	NFC bool
}
