package koi

import (
	"bufio"
	"io"

	"github.com/klauspost/compress/zstd"
)

// streamWriter is the byte sink beneath the pixel encoder: either a plain
// buffered writer or a zstd frame encoder. The encoder never branches on
// which one is active after construction.
type streamWriter interface {
	io.Writer
	Flush() error
	Close() error
}

type rawWriter struct {
	*bufio.Writer
}

func (w rawWriter) Close() error {
	return w.Flush()
}

func newStreamWriter(w io.Writer, c Compression) (streamWriter, error) {
	switch c {
	case CompressionNone:
		return rawWriter{bufio.NewWriter(w)}, nil
	case CompressionZstd:
		return newZstdWriter(w)
	default:
		return nil, ErrCompression
	}
}

func newStreamReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return io.NopCloser(bufio.NewReader(r)), nil
	case CompressionZstd:
		dec, err := newZstdReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, ErrCompression
	}
}

// --- ZSTD helpers ---

func newZstdWriter(w io.Writer) (*zstd.Encoder, error) {
	return zstd.NewWriter(
		w,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
}

func newZstdReader(r io.Reader) (*zstd.Decoder, error) {
	return zstd.NewReader(
		r,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
}
