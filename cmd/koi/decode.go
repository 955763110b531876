package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/svanichkin/koi"
)

var decodeOut string

var decodeCmd = &cobra.Command{
	Use:   "decode <input.koi>",
	Short: "Decode a KOI file to PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeOut, "out", "o", "", "output file (default: input with .png extension)")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	inPath := args[0]
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	img, err := koi.DecodeFrom(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}
	logVerbose("decoded %dx%d", img.Bounds().Dx(), img.Bounds().Dy())

	outPath := decodeOut
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + ".png"
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("write png: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	fmt.Printf("Decoded %s → %s\n", inPath, outPath)
	return nil
}
