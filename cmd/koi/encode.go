package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/svanichkin/koi"
)

var (
	encodeOut    string
	encodeRaw    bool
	encodeResize string
)

var encodeCmd = &cobra.Command{
	Use:   "encode <input-image>",
	Short: "Encode an image (png, jpg, gif, webp, bmp) to KOI",
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "output file (default: input with .koi extension)")
	encodeCmd.Flags().BoolVar(&encodeRaw, "raw", false, "store the op stream uncompressed")
	encodeCmd.Flags().StringVar(&encodeResize, "resize", "", "resize to WxH before encoding (e.g. 800x600)")
	rootCmd.AddCommand(encodeCmd)
}

func runEncode(cmd *cobra.Command, args []string) error {
	inPath := args[0]
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	logVerbose("input: %s (%s, %dx%d)", inPath, format, img.Bounds().Dx(), img.Bounds().Dy())

	if encodeResize != "" {
		w, h, err := parseSize(encodeResize)
		if err != nil {
			return err
		}
		img = imaging.Resize(img, w, h, imaging.Lanczos)
		logVerbose("resized to %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}

	comp := koi.CompressionZstd
	if encodeRaw {
		comp = koi.CompressionNone
	}

	outPath := encodeOut
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".koi"
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := koi.EncodeTo(out, img, comp); err != nil {
		out.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	fi, err := os.Stat(outPath)
	if err != nil {
		return err
	}
	fmt.Printf("Encoded %s → %s (%d bytes)\n", inPath, outPath, fi.Size())
	return nil
}

func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q", s)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q", s)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("size %q must be positive", s)
	}
	return w, h, nil
}
