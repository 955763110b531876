package koi

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/xfmoulet/qoi"
)

func benchImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 512, 512))
	for y := 0; y < 512; y++ {
		for x := 0; x < 512; x++ {
			i := y*img.Stride + x*4
			img.Pix[i+0] = uint8(x ^ y)
			img.Pix[i+1] = uint8((x + y) / 2)
			img.Pix[i+2] = uint8((x * 3) ^ (y * 5))
			img.Pix[i+3] = 255
		}
	}
	return img
}

func BenchmarkEncodeZstd(b *testing.B) {
	img := benchImage()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Encode(img, CompressionZstd); err != nil {
			b.Fatalf("koi encode failed: %v", err)
		}
	}
}

func BenchmarkEncodeRaw(b *testing.B) {
	img := benchImage()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Encode(img, CompressionNone); err != nil {
			b.Fatalf("koi encode failed: %v", err)
		}
	}
}

func BenchmarkDecodeZstd(b *testing.B) {
	data, err := Encode(benchImage(), CompressionZstd)
	if err != nil {
		b.Fatalf("koi encode failed: %v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Decode(data); err != nil {
			b.Fatalf("koi decode failed: %v", err)
		}
	}
}

func BenchmarkEncodeQOI(b *testing.B) {
	img := benchImage()

	buf := &bytes.Buffer{}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := qoi.Encode(buf, img); err != nil {
			b.Fatalf("qoi encode failed: %v", err)
		}
	}
}

func BenchmarkEncodePNG(b *testing.B) {
	img := benchImage()

	buf := &bytes.Buffer{}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		buf.Reset()
		if err := png.Encode(buf, img); err != nil {
			b.Fatalf("png encode failed: %v", err)
		}
	}
}
