package koi

// rgba is one pixel as four ordered channel bytes (R, G, B, A).
type rgba [4]byte

func (p rgba) isGray() bool {
	return p[0] == p[1] && p[1] == p[2]
}

// hash maps a pixel to its cache slot. The formula is a format constant
// shared by encoder and decoder.
func (p rgba) hash() byte {
	return (p[0]*3 + p[1]*5 + p[2]*7 + p[3]*11) % cacheSize
}

// diff returns the wrapping per-channel RGB deltas against prev.
func (p rgba) diff(prev rgba) (dr, dg, db byte) {
	return p[0] - prev[0], p[1] - prev[1], p[2] - prev[2]
}

// colorDiff packs small RGB deltas into a single Diff op byte. The second
// result is false when any delta falls outside [-2,1].
func colorDiff(dr, dg, db byte) (byte, bool) {
	dr += 2
	dg += 2
	db += 2
	if dr > 3 || dg > 3 || db > 3 {
		return 0, false
	}
	return opDiff | dr<<4 | dg<<2 | db, true
}

// lumaDiff packs deltas into a two-byte Luma op: the green delta carries
// the baseline, red and blue are stored relative to it. The second result
// is false when dg falls outside [-32,31] or either relative delta falls
// outside [-8,7].
func lumaDiff(dr, dg, db byte) ([2]byte, bool) {
	drdg := dr - dg + 8
	dbdg := db - dg + 8
	dg += 32
	if dg > 63 || drdg > 15 || dbdg > 15 {
		return [2]byte{}, false
	}
	return [2]byte{opLuma | dg, drdg<<4 | dbdg}, true
}

// alphaDiff packs a small alpha delta into a DiffAlpha op byte. The second
// result is false when the delta falls outside [-8,7].
func alphaDiff(prev, cur rgba) (byte, bool) {
	da := cur[3] - prev[3] + 8
	if da > 15 {
		return 0, false
	}
	return opDiffAlpha | da, true
}

func (p rgba) applyDiff(b byte) rgba {
	return rgba{
		p[0] + (b>>4&3 - 2),
		p[1] + (b>>2&3 - 2),
		p[2] + (b&3 - 2),
		p[3],
	}
}

func (p rgba) applyLuma(b1, b2 byte) rgba {
	dg := b1&0x3f - 32
	return rgba{
		p[0] + dg + (b2>>4 - 8),
		p[1] + dg,
		p[2] + dg + (b2&0x0f - 8),
		p[3],
	}
}

func (p rgba) applyAlphaDiff(b byte) rgba {
	return rgba{p[0], p[1], p[2], p[3] + (b&0x0f - 8)}
}
