package persistence

import (
	"errors"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the outer framing of the backing file.
//
// Compression is a property of the store configuration, not of the file:
// readers use the configured codec rather than sniffing content.
type Compression uint8

const (
	// CompressionNone stores the record stream as plain text.
	CompressionNone Compression = iota
	// CompressionZstd wraps the record stream in a zstd frame.
	CompressionZstd
	// CompressionLZ4 wraps the record stream in an lz4 frame.
	CompressionLZ4
)

// ErrUnknownCompression is returned for a Compression outside the known set.
var ErrUnknownCompression = errors.New("nkv: unknown compression codec")

// String returns the codec name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// Valid reports whether c is a known codec.
func (c Compression) Valid() bool {
	return c <= CompressionLZ4
}

// zstd encoders are expensive to build; reuse them across saves.
var zstdEncoderPool sync.Pool

func getZstdEncoder(w io.Writer) *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		enc := v.(*zstd.Encoder)
		enc.Reset(w)
		return enc
	}
	enc, _ := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

// WrapWriter layers the compression codec over w. The returned WriteCloser
// must be closed to flush the frame; closing it does not close w.
func WrapWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		enc := getZstdEncoder(w)
		return &pooledZstdWriter{enc: enc}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, ErrUnknownCompression
	}
}

// WrapReader layers the decompression codec over r. Closing the returned
// ReadCloser does not close r.
func WrapReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return &zstdReader{dec: dec}, nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	default:
		return nil, ErrUnknownCompression
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

type pooledZstdWriter struct {
	enc    *zstd.Encoder
	closed bool
}

func (w *pooledZstdWriter) Write(p []byte) (int, error) {
	return w.enc.Write(p)
}

func (w *pooledZstdWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	err := w.enc.Close()
	w.enc.Reset(nil)
	zstdEncoderPool.Put(w.enc)
	w.enc = nil
	return err
}

type zstdReader struct {
	dec *zstd.Decoder
}

func (r *zstdReader) Read(p []byte) (int, error) {
	return r.dec.Read(p)
}

func (r *zstdReader) Close() error {
	r.dec.Close()
	return nil
}
