package persistence

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveToFileReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.nkv")

	err := SaveToFile(path, true, func(w io.Writer) error {
		_, err := w.Write([]byte("first"))
		return err
	})
	require.NoError(t, err)

	err = SaveToFile(path, true, func(w io.Writer) error {
		_, err := w.Write([]byte("second"))
		return err
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestSaveToFileLeavesOriginalOnFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.nkv")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	boom := errors.New("boom")
	err := SaveToFile(path, true, func(w io.Writer) error {
		// Fail mid-serialization after some bytes already went out.
		_, _ = w.Write([]byte("partial garbage"))
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Original content survives and no temp files linger.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "store.nkv", entries[0].Name())
}

func TestSaveToFileMissingDir(t *testing.T) {
	err := SaveToFile(filepath.Join(t.TempDir(), "nope", "store.nkv"), true, func(io.Writer) error {
		return nil
	})
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.nkv")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	data, closer, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	require.NoError(t, closer.Close())
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.nkv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompressionRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte("nkv record stream "), 1024)

	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "store.nkv")

			err := SaveToFile(path, true, func(w io.Writer) error {
				cw, err := WrapWriter(w, c)
				if err != nil {
					return err
				}
				if _, err := cw.Write(payload); err != nil {
					_ = cw.Close()
					return err
				}
				return cw.Close()
			})
			require.NoError(t, err)

			var got []byte
			if c == CompressionNone {
				data, closer, err := ReadFile(path)
				require.NoError(t, err)
				got = bytes.Clone(data)
				require.NoError(t, closer.Close())
			} else {
				got, err = ReadCompressedFile(path, c)
				require.NoError(t, err)

				// The frame actually shrinks a repetitive stream.
				fi, err := os.Stat(path)
				require.NoError(t, err)
				assert.Less(t, fi.Size(), int64(len(payload)))
			}
			assert.Equal(t, payload, got)
		})
	}
}

func TestWrapUnknownCompression(t *testing.T) {
	_, err := WrapWriter(io.Discard, Compression(99))
	require.ErrorIs(t, err, ErrUnknownCompression)

	_, err = WrapReader(bytes.NewReader(nil), Compression(99))
	require.ErrorIs(t, err, ErrUnknownCompression)
}
