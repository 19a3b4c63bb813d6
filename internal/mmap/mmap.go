// Package mmap provides read-only memory mapping of files.
//
// It exists so the store's read path can hand the decoder a byte slice
// without first copying the whole file through a read loop. Callers must
// not retain the slice returned by Bytes past Close.
package mmap

import (
	"errors"
	"os"
	"sync/atomic"
)

// ErrClosed is returned when accessing a mapping after Close.
var ErrClosed = errors.New("mmap: mapping is closed")

// File is a read-only memory mapping of a file.
type File struct {
	data   []byte
	closed atomic.Bool
	unmap  func([]byte) error
}

// Open maps the file at path into memory as read-only.
// A zero-length file yields a valid mapping with nil bytes.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{}, nil
	}

	data, unmap, err := osMap(f, int(size))
	if err != nil {
		return nil, err
	}
	return &File{data: data, unmap: unmap}, nil
}

// Bytes returns the mapped content. The slice is valid until Close.
func (m *File) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Close unmaps the file. It is idempotent.
func (m *File) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}
