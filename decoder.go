package koi

import (
	"fmt"
	"io"
)

// PixelDecoder reconstructs raw pixel bytes from a KOI op stream. It
// implements io.Reader: every decoded pixel yields channel-count bytes,
// buffered so arbitrary caller read sizes work. After the declared pixel
// count the stream must carry the end-of-image marker; Read then reports
// io.EOF.
type PixelDecoder struct {
	r        io.ReadCloser
	channels Channels

	cache [cacheSize]rgba
	prev  rgba

	pixelsIn    int
	pixelsCount int
	terminated  bool

	out     [4]byte
	outN    int
	outLen  int
	scratch [8]byte
}

// NewPixelDecoder creates a decoder session for exactly pixelsCount
// pixels of the given channel count, reading through the selected stream
// backend from r.
func NewPixelDecoder(r io.Reader, pixelsCount int, channels Channels, comp Compression) (*PixelDecoder, error) {
	if channels != ChannelsRGB && channels != ChannelsRGBA {
		return nil, ErrChannels
	}
	sr, err := newStreamReader(r, comp)
	if err != nil {
		return nil, err
	}
	return &PixelDecoder{
		r:           sr,
		channels:    channels,
		prev:        rgba{0, 0, 0, 255},
		pixelsCount: pixelsCount,
	}, nil
}

func (d *PixelDecoder) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if d.outN < d.outLen {
			c := copy(p[n:], d.out[d.outN:d.outLen])
			n += c
			d.outN += c
			continue
		}
		if d.pixelsIn == d.pixelsCount {
			if err := d.checkEndMarker(); err != nil {
				return n, err
			}
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		if err := d.decodePixel(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (d *PixelDecoder) decodePixel() error {
	if _, err := io.ReadFull(d.r, d.scratch[:1]); err != nil {
		return err
	}
	b1 := d.scratch[0]

	var px rgba
	switch {
	case b1 <= opIndexEnd:
		// Whatever the slot holds is trusted as-is, including the zero
		// value of a slot that was never written.
		d.finishPixel(d.cache[b1], false)
		return nil
	case b1 <= opDiffEnd:
		px = d.prev.applyDiff(b1)
	case b1 <= opLumaEnd:
		if _, err := io.ReadFull(d.r, d.scratch[1:2]); err != nil {
			return err
		}
		px = d.prev.applyLuma(b1, d.scratch[1])
	case b1 <= opRunEnd:
		// Reserved range with no encoder production path.
		return fmt.Errorf("%w: 0x%02x (reserved run range)", ErrInvalidOp, b1)
	case b1 <= opDiffAlphaEnd:
		px = d.prev.applyAlphaDiff(b1)
	case b1 == opGray:
		if _, err := io.ReadFull(d.r, d.scratch[1:2]); err != nil {
			return err
		}
		v := d.scratch[1]
		px = rgba{v, v, v, d.prev[3]}
	case b1 == opGrayAlpha:
		if _, err := io.ReadFull(d.r, d.scratch[1:3]); err != nil {
			return err
		}
		v := d.scratch[1]
		px = rgba{v, v, v, d.scratch[2]}
	case b1 == opRgb:
		if _, err := io.ReadFull(d.r, d.scratch[1:4]); err != nil {
			return err
		}
		px = rgba{d.scratch[1], d.scratch[2], d.scratch[3], d.prev[3]}
	case b1 == opRgba && d.channels == ChannelsRGBA:
		if _, err := io.ReadFull(d.r, d.scratch[1:5]); err != nil {
			return err
		}
		px = rgba{d.scratch[1], d.scratch[2], d.scratch[3], d.scratch[4]}
	default:
		return fmt.Errorf("%w: 0x%02x", ErrInvalidOp, b1)
	}
	d.finishPixel(px, true)
	return nil
}

// finishPixel replays the encoder-side state transition and stages the
// pixel's channel bytes for the caller.
func (d *PixelDecoder) finishPixel(px rgba, store bool) {
	if store {
		d.cache[px.hash()] = px
	}
	d.prev = px
	d.pixelsIn++
	copy(d.out[:], px[:])
	d.outN = 0
	d.outLen = int(d.channels)
}

// checkEndMarker consumes and validates the end-of-image marker on the
// first call after the declared pixel count has been reached.
func (d *PixelDecoder) checkEndMarker() error {
	if d.terminated {
		return nil
	}
	if _, err := io.ReadFull(d.r, d.scratch[:8]); err != nil {
		return err
	}
	if d.scratch != endOfImage {
		return ErrInvalidEndMarker
	}
	d.terminated = true
	return nil
}

// Close releases the stream backend.
func (d *PixelDecoder) Close() error {
	return d.r.Close()
}
