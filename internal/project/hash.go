package project

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// PathDigest hashes the absolute, slash-normalised form of path. It keys
// per-input records, so the same document reached through different
// relative paths maps to one record.
func PathDigest(path string) (Digest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Digest{}, err
	}
	return sha256.Sum256([]byte(filepath.ToSlash(abs))), nil
}
