package koi

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"
	"io"
)

const (
	magic      = "KOI\n"
	headerSize = 14
)

// Header describes one KOI container stream.
// Layout: magic(4) + width(uint32) + height(uint32) + channels(uint8) +
// compression(uint8), big-endian.
type Header struct {
	Width       uint32
	Height      uint32
	Channels    Channels
	Compression Compression
}

func writeHeader(w io.Writer, h Header) error {
	var buf [headerSize]byte
	copy(buf[:4], magic)
	binary.BigEndian.PutUint32(buf[4:8], h.Width)
	binary.BigEndian.PutUint32(buf[8:12], h.Height)
	buf[12] = byte(h.Channels)
	buf[13] = byte(h.Compression)
	_, err := w.Write(buf[:])
	return err
}

// ReadHeader reads and validates a KOI container header.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("koi: read header: %w", err)
	}
	if string(buf[:4]) != magic {
		return Header{}, ErrInvalidMagic
	}
	h := Header{
		Width:       binary.BigEndian.Uint32(buf[4:8]),
		Height:      binary.BigEndian.Uint32(buf[8:12]),
		Channels:    Channels(buf[12]),
		Compression: Compression(buf[13]),
	}
	if h.Channels != ChannelsRGB && h.Channels != ChannelsRGBA {
		return Header{}, fmt.Errorf("%w: channels=%d", ErrInvalidHeader, buf[12])
	}
	if h.Compression != CompressionNone && h.Compression != CompressionZstd {
		return Header{}, fmt.Errorf("%w: compression=%d", ErrInvalidHeader, buf[13])
	}
	return h, nil
}

// toRGBA copies any image.Image into an *image.RGBA with bounds starting
// at (0,0).
func toRGBA(src image.Image) *image.RGBA {
	if img, ok := src.(*image.RGBA); ok && img.Bounds().Min == image.Pt(0, 0) {
		return img
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
