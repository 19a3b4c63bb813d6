package nkv

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/nkv/codec"
	"github.com/hupe1980/nkv/persistence"
	"github.com/hupe1980/nkv/value"
)

// Store manages a single NKV file.
//
// A Store is a lightweight handle (name + directory); it holds no copy of the
// data between calls unless the opt-in cache is enabled. Every Read re-parses
// the file and every write re-serializes the full entry set, so the cost a
// caller measures is the honest end-to-end cost of the format.
//
// A Store exclusively owns its backing file. Its methods are safe for
// concurrent use within one process; coordinating multiple processes (or
// multiple Stores on the same path) is the caller's responsibility.
type Store struct {
	name string
	path string
	opts Options

	mu sync.Mutex // serializes file transactions

	cacheMu  sync.RWMutex
	cached   *value.Map
	cacheGen uint64 // bumped on every write-through refresh
	sf       singleflight.Group
}

// New creates a Store for the backing file name (e.g. "data.nkv") in the
// configured directory. Construction performs no I/O; the file is created on
// first write.
func New(name string, optFns ...func(o *Options)) (*Store, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if name == "" {
		return nil, &ParamError{Reason: "empty store name"}
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return nil, &ParamError{Key: name, Reason: "store name must not contain path separators"}
	}
	if name == "." || name == ".." {
		return nil, &ParamError{Key: name, Reason: "store name must not be a directory reference"}
	}
	if !opts.Compression.Valid() {
		return nil, &ParamError{Key: name, Reason: "unknown compression codec"}
	}

	return &Store{
		name: name,
		path: filepath.Join(opts.Path, name),
		opts: opts,
	}, nil
}

// Name returns the backing file name.
func (s *Store) Name() string { return s.name }

// Path returns the resolved path of the backing file, for callers that stat
// or unlink it themselves.
func (s *Store) Path() string { return s.path }

// Write upserts a single entry and atomically rewrites the backing file.
//
// Existing keys keep their position, new keys append at the end. A missing
// file starts an empty store. Single-entry writes are O(n) in store size by
// design; use WriteBatch for bulk loads.
func (s *Store) Write(key string, v value.Value) error {
	if err := validateEntry(key, v); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.load()
	if err != nil {
		if !os.IsNotExist(err) {
			return s.translateError(err)
		}
		cur = value.NewMap()
	}
	cur.Set(key, v)

	if err := s.save(cur); err != nil {
		return err
	}
	s.updateCache(cur)
	return nil
}

// WriteAny converts a Go scalar via value.FromAny and writes it.
func (s *Store) WriteAny(key string, v any) error {
	vv, err := value.FromAny(v)
	if err != nil {
		return &ParamError{Key: key, Reason: "unsupported value", cause: err}
	}
	return s.Write(key, vv)
}

// WriteBatch replaces the entire backing file with the serialized mapping in
// one encode pass and one atomic file write.
//
// Every entry is validated before any I/O: if any key or value is invalid the
// file is left untouched. A nil or empty map writes a header-only file.
func (s *Store) WriteBatch(m *value.Map) error {
	var invalid error
	m.Range(func(key string, v value.Value) bool {
		invalid = validateEntry(key, v)
		return invalid == nil
	})
	if invalid != nil {
		return invalid
	}

	buf, err := codec.AppendBatch(nil, m)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveBytes(buf); err != nil {
		return err
	}
	s.updateCache(m)
	return nil
}

// Read returns the full decoded mapping in insertion order.
//
// The result is a fresh map on every call; mutating it never affects the
// store or other readers. A missing file yields ErrStoreNotFound unless the
// store was configured with WithEmptyIfMissing.
func (s *Store) Read() (*value.Map, error) {
	if !s.opts.Cache {
		return s.readDisk()
	}

	s.cacheMu.RLock()
	cached := s.cached
	s.cacheMu.RUnlock()
	if cached != nil {
		return cached.Clone(), nil
	}

	// Collapse concurrent cold reads into one file parse.
	v, err, _ := s.sf.Do("read", func() (any, error) {
		s.cacheMu.RLock()
		gen := s.cacheGen
		s.cacheMu.RUnlock()

		m, err := s.readDisk()
		if err != nil {
			return nil, err
		}
		s.fillCache(m, gen)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*value.Map).Clone(), nil
}

func (s *Store) readDisk() (*value.Map, error) {
	m, err := s.load()
	if err != nil {
		if os.IsNotExist(err) && s.opts.EmptyIfMissing {
			return value.NewMap(), nil
		}
		return nil, s.translateError(err)
	}
	return m, nil
}

func (s *Store) load() (*value.Map, error) {
	if s.opts.Compression == persistence.CompressionNone {
		data, closer, err := persistence.ReadFile(s.path)
		if err != nil {
			return nil, err
		}
		defer closer.Close()
		return codec.Decode(data)
	}

	data, err := persistence.ReadCompressedFile(s.path, s.opts.Compression)
	if err != nil {
		return nil, err
	}
	return codec.Decode(data)
}

func (s *Store) save(m *value.Map) error {
	buf, err := codec.AppendBatch(nil, m)
	if err != nil {
		return err
	}
	return s.saveBytes(buf)
}

func (s *Store) saveBytes(buf []byte) error {
	return persistence.SaveToFile(s.path, s.opts.Sync, func(w io.Writer) error {
		cw, err := persistence.WrapWriter(w, s.opts.Compression)
		if err != nil {
			return err
		}
		if _, err := cw.Write(buf); err != nil {
			_ = cw.Close()
			return err
		}
		return cw.Close()
	})
}

func (s *Store) updateCache(m *value.Map) {
	if !s.opts.Cache {
		return
	}
	s.cacheMu.Lock()
	s.cached = m.Clone()
	s.cacheGen++
	s.cacheMu.Unlock()
}

// fillCache installs a cold-read result unless a write refreshed the cache
// after gen was captured. The write-through content is newer and wins.
func (s *Store) fillCache(m *value.Map, gen uint64) {
	s.cacheMu.Lock()
	if s.cacheGen == gen {
		s.cached = m.Clone()
	}
	s.cacheMu.Unlock()
}

func validateEntry(key string, v value.Value) error {
	if key == "" {
		return &ParamError{Reason: "empty key"}
	}
	if !v.Kind.Valid() {
		return &ParamError{Key: key, Reason: "unsupported value kind"}
	}
	return nil
}
