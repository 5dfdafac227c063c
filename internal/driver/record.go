package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ezlatexdoc/internal/project"
)

// Current schema version - increment when Record format changes
const recordSchemaVersion uint16 = 1

// RecordStore remembers which files a run created for each input, so that
// `clean` can remove them before a create-exclusive rerun.
// Thread-safe for concurrent access.
type RecordStore struct {
	mu  sync.RWMutex
	dir string
}

// Record lists the outputs created for one input document.
type Record struct {
	Schema  uint16
	Input   string   // абсолютный путь входного документа
	Outputs []string // пути созданных файлов в порядке создания
	Failed  bool     // прогон завершился ошибкой, выходы могут быть неполными
	Created time.Time
}

// OpenRecordStore opens the store under $XDG_CACHE_HOME/<app>/runs
// (or ~/.cache/<app>/runs).
func OpenRecordStore(app string) (*RecordStore, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewRecordStore(filepath.Join(base, app, "runs"))
}

// NewRecordStore opens a store rooted at dir.
func NewRecordStore(dir string) (*RecordStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &RecordStore{dir: dir}, nil
}

func (s *RecordStore) pathFor(key project.Digest) string {
	return filepath.Join(s.dir, key.String()+".mp")
}

// Put serializes and atomically writes a record.
func (s *RecordStore) Put(key project.Digest, rec *Record) (err error) {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.Schema = recordSchemaVersion
	p := s.pathFor(key)
	f, err := os.CreateTemp(s.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(rec); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a record. ok is false when none exists or its schema is stale.
func (s *RecordStore) Get(key project.Digest) (rec Record, ok bool, err error) {
	if s == nil {
		return Record{}, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, err := os.Open(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Record{}, false, nil
		}
		return Record{}, false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(&rec); err != nil {
		return Record{}, false, fmt.Errorf("decode record %s: %w", key, err)
	}
	if rec.Schema != recordSchemaVersion {
		return Record{}, false, nil
	}
	return rec, true, nil
}

// Remove deletes the record for key; a missing record is not an error.
func (s *RecordStore) Remove(key project.Digest) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.pathFor(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Remember stores the outputs of a run for input. Nothing is written when
// the run created no files.
func (s *RecordStore) Remember(input string, created []string, failed bool) error {
	if s == nil || len(created) == 0 {
		return nil
	}
	key, err := project.PathDigest(input)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	outputs := make([]string, len(created))
	for i, c := range created {
		if outputs[i], err = filepath.Abs(c); err != nil {
			return err
		}
	}
	// прежние выходы, которые ещё не удалили, тоже надо помнить
	if prev, ok, err := s.Get(key); err == nil && ok {
		outputs = mergePaths(prev.Outputs, outputs)
	}
	return s.Put(key, &Record{Input: abs, Outputs: outputs, Failed: failed, Created: time.Now().UTC()})
}

// Clean removes the recorded outputs of input and then the record itself.
// Already missing outputs are skipped silently.
func (s *RecordStore) Clean(input string) (removed []string, err error) {
	key, err := project.PathDigest(input)
	if err != nil {
		return nil, err
	}
	rec, ok, err := s.Get(key)
	if err != nil || !ok {
		return nil, err
	}
	var errs []error
	for _, out := range rec.Outputs {
		switch rmErr := os.Remove(out); {
		case rmErr == nil:
			removed = append(removed, out)
		case errors.Is(rmErr, os.ErrNotExist):
		default:
			errs = append(errs, rmErr)
		}
	}
	if len(errs) > 0 {
		return removed, errors.Join(errs...)
	}
	return removed, s.Remove(key)
}

func mergePaths(prev, next []string) []string {
	seen := make(map[string]struct{}, len(prev)+len(next))
	out := make([]string, 0, len(prev)+len(next))
	for _, list := range [][]string{prev, next} {
		for _, p := range list {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
