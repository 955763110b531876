package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"

	"github.com/svanichkin/koi"
)

var statsCmd = &cobra.Command{
	Use:   "stats <input.koi>",
	Short: "Print header, size and pixel digest of a KOI file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	h, err := koi.ReadHeader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	img, err := koi.Decode(data)
	if err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}

	compression := "none"
	if h.Compression == koi.CompressionZstd {
		compression = "zstd"
	}
	rawSize := int(h.Width) * int(h.Height) * int(h.Channels)

	fmt.Printf("size:        %dx%d\n", h.Width, h.Height)
	fmt.Printf("channels:    %d\n", h.Channels)
	fmt.Printf("compression: %s\n", compression)
	fmt.Printf("file:        %d bytes\n", len(data))
	fmt.Printf("raw pixels:  %d bytes\n", rawSize)
	if rawSize > 0 {
		fmt.Printf("ratio:       %.2f%%\n", float64(len(data))/float64(rawSize)*100)
	}
	fmt.Printf("pixel hash:  %016x\n", xxhash.Sum64(img.Pix))
	return nil
}
