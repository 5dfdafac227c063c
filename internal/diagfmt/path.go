package diagfmt

import "ezlatexdoc/internal/source"

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if mode == PathModeRelative {
		return f.FormatPath(mode.String(), fs.BaseDir())
	}
	return f.FormatPath(mode.String(), "")
}

// fileOf returns nil for spans that do not point into fs (e.g. IO failures
// reported before a document was loaded).
func fileOf(fs *source.FileSet, sp source.Span) *source.File {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	return fs.Get(sp.File)
}
