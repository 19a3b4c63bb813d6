package nkv

import "github.com/hupe1980/nkv/persistence"

// Options contains configuration for a Store.
type Options struct {
	// Path is the directory containing the backing file.
	Path string

	// Compression selects the outer framing of the backing file.
	// Readers use the configured codec; it is never sniffed from content.
	Compression persistence.Compression

	// Cache keeps the last decoded map in memory. Reads served from the
	// cache do not observe external out-of-band modifications of the file;
	// any write through this Store refreshes it. Default off: every Read
	// re-parses from disk.
	Cache bool

	// EmptyIfMissing makes Read return an empty map instead of
	// ErrStoreNotFound when the backing file does not exist yet.
	EmptyIfMissing bool

	// Sync fsyncs the temp file (and directory) on every save.
	// Disable only when the caller can tolerate losing the latest write
	// on power failure; atomic replacement is preserved either way.
	Sync bool
}

// DefaultOptions are the default Store options.
var DefaultOptions = Options{
	Path:        ".",
	Compression: persistence.CompressionNone,
	Sync:        true,
}

// WithPath sets the directory containing the backing file.
func WithPath(dir string) func(*Options) {
	return func(o *Options) {
		o.Path = dir
	}
}

// WithCompression sets the compression codec for the backing file.
func WithCompression(c persistence.Compression) func(*Options) {
	return func(o *Options) {
		o.Compression = c
	}
}

// WithCache enables the opt-in read cache.
func WithCache() func(*Options) {
	return func(o *Options) {
		o.Cache = true
	}
}

// WithEmptyIfMissing makes Read on a never-written store yield an empty map.
func WithEmptyIfMissing() func(*Options) {
	return func(o *Options) {
		o.EmptyIfMissing = true
	}
}

// WithSync controls fsync-on-save behavior.
func WithSync(sync bool) func(*Options) {
	return func(o *Options) {
		o.Sync = sync
	}
}
