package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"plain line\n",
	"%%% src_output = \"a.tex\"\n%%% doc_output = \"a.doc\"\nx\n%% doc\n",
	"\\% escaped % eol\n",
	"  %%  indented doc\n  %%   deeper\n",
	"%! keep\n%!\n%! me\n",
	"%%% src_output = \"\"\n",
	"%%% bogus = 1\n",
	"%%% src_output = \n",
	"trailing backslash \\",
	"\\\n",
	"x %%% inline directive is a comment\n",
	"\r\n%\r\n\uFEFFbom\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.dtx файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".dtx" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		return append([]byte(nil), src[:maxSeedBytes]...)
	}
	return src
}
