// Package persistence is the file access layer of the store.
//
// It provides atomic write-then-rename replacement of the backing file and
// the matching read paths. A partially written temporary file is never
// visible at the final path: on any failure the original file is left
// untouched and the temp file is removed.
package persistence

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/nkv/internal/mmap"
)

const writeBufferSize = 64 * 1024

// SaveToFile atomically replaces the file at path with the content produced
// by writeFunc.
//
// The content is written to a temporary file in the same directory (so the
// final rename stays atomic), flushed, optionally fsynced, and renamed over
// path. If writeFunc or any I/O step fails, path keeps its previous content.
func SaveToFile(path string, sync bool, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0o644)

	bw := bufio.NewWriterSize(tmp, writeBufferSize)
	if err := writeFunc(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if sync {
		if err := tmp.Sync(); err != nil {
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	tmpName = ""

	// Best-effort: make the rename itself durable on POSIX.
	if sync {
		if d, err := os.Open(dir); err == nil {
			_ = d.Sync()
			_ = d.Close()
		}
	}
	return nil
}

// ReadFile returns the content of the file at path together with a closer
// that releases it.
//
// Uncompressed stores are read through a read-only memory mapping so the
// decoder parses the page cache directly; if mapping fails the content is
// read into memory instead. The returned bytes are only valid until the
// closer is called.
func ReadFile(path string) ([]byte, io.Closer, error) {
	m, err := mmap.Open(path)
	if err == nil {
		return m.Bytes(), m, nil
	}
	if os.IsNotExist(err) {
		return nil, nil, err
	}

	// Mapping can fail on exotic filesystems; fall back to a plain read.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, nopCloser{}, nil
}

// ReadCompressedFile reads and decompresses the file at path with the given
// compression codec.
func ReadCompressedFile(path string, c Compression) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := WrapReader(bufio.NewReaderSize(f, writeBufferSize), c)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
