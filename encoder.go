package koi

import (
	"fmt"
	"io"
)

// PixelEncoder turns a stream of raw pixel-channel bytes into KOI ops.
// It implements io.Writer: callers push channel bytes in pixel order and
// the encoder emits one op per completed pixel through the stream backend.
// The end-of-image marker is appended automatically once the declared
// pixel count has been reached.
type PixelEncoder struct {
	w        streamWriter
	channels Channels

	cache [cacheSize]rgba
	prev  rgba

	pixelsIn    int
	pixelsCount int
	finished    bool

	buf  [4]byte
	bufN int
}

// NewPixelEncoder creates an encoder session for exactly pixelsCount
// pixels of the given channel count, writing through the selected stream
// backend to w. Close must be called to finalize the backend.
func NewPixelEncoder(w io.Writer, pixelsCount int, channels Channels, comp Compression) (*PixelEncoder, error) {
	if channels != ChannelsRGB && channels != ChannelsRGBA {
		return nil, ErrChannels
	}
	sw, err := newStreamWriter(w, comp)
	if err != nil {
		return nil, err
	}
	return &PixelEncoder{
		w:           sw,
		channels:    channels,
		prev:        rgba{0, 0, 0, 255},
		pixelsCount: pixelsCount,
	}, nil
}

func (e *PixelEncoder) Write(p []byte) (int, error) {
	c := int(e.channels)
	for i, b := range p {
		if e.finished {
			return i, ErrPixelCount
		}
		e.buf[e.bufN] = b
		e.bufN++
		if e.bufN < c {
			continue
		}
		e.bufN = 0
		px := rgba{e.buf[0], e.buf[1], e.buf[2], 255}
		if e.channels == ChannelsRGBA {
			px[3] = e.buf[3]
		}
		if err := e.encodePixel(px); err != nil {
			return i + 1, err
		}
		e.prev = px
		if e.pixelsIn == e.pixelsCount {
			if err := e.finish(); err != nil {
				return i + 1, err
			}
		}
	}
	return len(p), nil
}

func (e *PixelEncoder) encodePixel(px rgba) error {
	if e.channels == ChannelsRGB && px[3] != 255 {
		return ErrNonOpaqueAlpha
	}
	e.pixelsIn++

	h := px.hash()
	if e.cache[h] == px {
		return e.write(opIndex | h)
	}
	e.cache[h] = px

	if px[3] != e.prev[3] {
		// A pixel that changes alpha must take an op that carries it;
		// every op below reconstructs with the previous pixel's alpha.
		if px[0] == e.prev[0] && px[1] == e.prev[1] && px[2] == e.prev[2] {
			if op, ok := alphaDiff(e.prev, px); ok {
				return e.write(op)
			}
		}
		if px.isGray() {
			return e.write(opGrayAlpha, px[0], px[3])
		}
		return e.write(opRgba, px[0], px[1], px[2], px[3])
	}

	dr, dg, db := px.diff(e.prev)
	if op, ok := colorDiff(dr, dg, db); ok {
		return e.write(op)
	}
	if op, ok := lumaDiff(dr, dg, db); ok {
		return e.write(op[0], op[1])
	}
	if px.isGray() {
		return e.write(opGray, px[0])
	}
	return e.write(opRgb, px[0], px[1], px[2])
}

func (e *PixelEncoder) write(bs ...byte) error {
	_, err := e.w.Write(bs)
	return err
}

// finish appends the end-of-image marker exactly once.
func (e *PixelEncoder) finish() error {
	if e.finished {
		return nil
	}
	e.finished = true
	_, err := e.w.Write(endOfImage[:])
	return err
}

// Flush forces buffered bytes through the stream backend. A partially
// accumulated pixel at this point means the caller supplied a byte count
// that is not a multiple of the channel count.
func (e *PixelEncoder) Flush() error {
	if e.bufN != 0 {
		return fmt.Errorf("%w: %d leftover bytes", ErrChannelMismatch, e.bufN)
	}
	if e.pixelsIn == e.pixelsCount {
		if err := e.finish(); err != nil {
			return err
		}
	}
	return e.w.Flush()
}

// Close flushes and finalizes the stream backend; with zstd this
// completes the frame.
func (e *PixelEncoder) Close() error {
	if err := e.Flush(); err != nil {
		return err
	}
	return e.w.Close()
}
