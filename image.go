package koi

import (
	"bytes"
	"fmt"
	"image"
	"io"
)

// Encode compresses img into the KOI container format. Fully opaque
// images are stored with three channels.
func Encode(img image.Image, comp Compression) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, img, comp); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeTo encodes img and writes the KOI container stream to w.
// This mirrors the common Go codec style (e.g. image/png Encode).
func EncodeTo(w io.Writer, img image.Image, comp Compression) error {
	src := toRGBA(img)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	channels := ChannelsRGBA
	if src.Opaque() {
		channels = ChannelsRGB
	}

	h := Header{
		Width:       uint32(width),
		Height:      uint32(height),
		Channels:    channels,
		Compression: comp,
	}
	if err := writeHeader(w, h); err != nil {
		return fmt.Errorf("koi: write header: %w", err)
	}

	enc, err := NewPixelEncoder(w, width*height, channels, comp)
	if err != nil {
		return err
	}

	var row []byte
	if channels == ChannelsRGB {
		row = make([]byte, width*3)
	}
	for y := 0; y < height; y++ {
		line := src.Pix[y*src.Stride : y*src.Stride+width*4]
		if channels == ChannelsRGBA {
			if _, err := enc.Write(line); err != nil {
				return err
			}
			continue
		}
		for x := 0; x < width; x++ {
			copy(row[x*3:], line[x*4:x*4+3])
		}
		if _, err := enc.Write(row); err != nil {
			return err
		}
	}
	return enc.Close()
}

// Decode reads a KOI container stream from data and reconstructs the
// image.
func Decode(data []byte) (*image.RGBA, error) {
	return DecodeFrom(bytes.NewReader(data))
}

// DecodeFrom reads a KOI container stream from r and reconstructs the
// image, validating the end-of-image marker.
func DecodeFrom(r io.Reader) (*image.RGBA, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	width, height := int(h.Width), int(h.Height)

	dec, err := NewPixelDecoder(r, width*height, h.Channels, h.Compression)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if h.Channels == ChannelsRGBA {
		if _, err := io.ReadFull(dec, img.Pix[:width*height*4]); err != nil {
			return nil, err
		}
	} else {
		row := make([]byte, width*3)
		for y := 0; y < height; y++ {
			if _, err := io.ReadFull(dec, row); err != nil {
				return nil, err
			}
			line := img.Pix[y*img.Stride:]
			for x := 0; x < width; x++ {
				copy(line[x*4:], row[x*3:x*3+3])
				line[x*4+3] = 255
			}
		}
	}

	// One more read hits the end-of-image marker check.
	var tail [1]byte
	switch _, err := dec.Read(tail[:]); err {
	case io.EOF:
	case nil:
		return nil, ErrInvalidEndMarker
	default:
		return nil, err
	}
	return img, nil
}
