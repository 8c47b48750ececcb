// Package input loads whole files into byte buffers for the decoding
// pipeline, transparently inflating compressed exports. The pipeline
// itself never touches the filesystem; this is the boundary that does.
package input

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Compressed-container magic numbers.
var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// zstdDec is a concurrent-safe zstd decoder.
var zstdDec *zstd.Decoder

func init() {
	var err error
	zstdDec, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		panic("input: init zstd decoder: " + err.Error())
	}
}

// ReadFile reads the file at path into memory. Gzip and zstd
// containers are recognized by their magic bytes and inflated; the
// returned buffer is always the raw line data.
func ReadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Expand(raw)
}

// Expand inflates buf if it is a recognized compressed container and
// returns it unchanged otherwise.
func Expand(buf []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(buf, gzipMagic):
		gz, err := gzip.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("open gzip container: %w", err)
		}
		defer func() { _ = gz.Close() }()
		out, err := io.ReadAll(gz)
		if err != nil {
			return nil, fmt.Errorf("inflate gzip container: %w", err)
		}
		return out, nil

	case bytes.HasPrefix(buf, zstdMagic):
		out, err := zstdDec.DecodeAll(buf, nil)
		if err != nil {
			return nil, fmt.Errorf("inflate zstd container: %w", err)
		}
		return out, nil
	}
	return buf, nil
}
