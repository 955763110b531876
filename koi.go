// KOI is a lossless streaming codec for 3- and 4-channel pixel data.
// Each pixel is reduced to one op from a small grammar (a lookup into a
// 64-color cache, wraparound color deltas, or explicit literals), and the
// resulting op stream can optionally pass through a zstd frame on the way
// to the underlying writer. Encoder and decoder keep a color cache and a
// previous-pixel register that must evolve identically on both sides.

package koi

import "errors"

// Op ranges. The leading byte of every encoded unit falls into exactly one
// of these; the decoder dispatches on it with no other framing.
const (
	opIndex        = 0x00 // 1 byte: 6-bit cache slot
	opIndexEnd     = 0x3f
	opDiff         = 0x40 // 1 byte: 2-bit biased RGB deltas
	opDiffEnd      = 0x7f
	opLuma         = 0x80 // 2 bytes: 6-bit biased green delta + relative red/blue
	opLumaEnd      = 0xbf
	opRun          = 0xc0 // reserved run-length range, never emitted
	opRunEnd       = 0xdf
	opDiffAlpha    = 0xe0 // 1 byte: 4-bit biased alpha delta
	opDiffAlphaEnd = 0xef
	opGray         = 0xfc // 2 bytes: gray value, alpha carried over
	opGrayAlpha    = 0xfd // 3 bytes: gray value + alpha
	opRgb          = 0xfe // 4 bytes: R,G,B, alpha carried over
	opRgba         = 0xff // 5 bytes: R,G,B,A
)

// cacheSize is the number of slots in the recent-colors table.
const cacheSize = 64

// endOfImage terminates the op stream after the declared pixel count.
var endOfImage = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Channels is the number of raw bytes per pixel in a session. Streams with
// three channels carry an implicit opaque alpha.
type Channels uint8

const (
	ChannelsRGB  Channels = 3
	ChannelsRGBA Channels = 4
)

// Compression selects the stream backend beneath the op stream. It is
// fixed at construction for the whole session.
type Compression uint8

const (
	CompressionNone Compression = 0
	CompressionZstd Compression = 1
)

var (
	ErrInvalidMagic     = errors.New("koi: invalid magic")
	ErrInvalidHeader    = errors.New("koi: invalid header")
	ErrInvalidOp        = errors.New("koi: invalid op byte")
	ErrInvalidEndMarker = errors.New("koi: invalid end of image marker")
	ErrChannelMismatch  = errors.New("koi: buffered bytes do not form a whole pixel, is the channel count correct?")
	ErrNonOpaqueAlpha   = errors.New("koi: alpha must be 255 for all pixels in RGB streams")
	ErrPixelCount       = errors.New("koi: pixel count exceeded")
	ErrChannels         = errors.New("koi: channels must be 3 or 4")
	ErrCompression      = errors.New("koi: unknown compression")
)
