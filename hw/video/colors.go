// Package video is the scanline software compositor: it turns the VDP's
// planes, window and sprites into an RGBA pixel buffer. It only ever reads
// the video RAMs, so it can run at any point between CPU instructions.
package video

import (
	"image/color"
)

const (
	PaletteCount = 4
	ColorCount   = 16
)

// Each 3-bit color component is a brightness level, not a linear value.
var levels = [8]uint8{0, 52, 87, 116, 144, 172, 206, 255}

type Palette [ColorCount]color.RGBA

// Colors caches the four CRAM palettes decoded to RGBA.
type Colors struct {
	palettes [PaletteCount]Palette
}

// Update re-decodes all palettes from raw CRAM. Colors are 9-bit
// big-endian words laid out as 0000 bbb0 ggg0 rrr0.
func (c *Colors) Update(cram []byte) {
	for paletteIdx := 0; paletteIdx < PaletteCount; paletteIdx++ {
		for colorIdx := 0; colorIdx < ColorCount; colorIdx++ {
			off := paletteIdx*32 + colorIdx*2
			word := uint16(cram[off])<<8 | uint16(cram[off+1])
			c.palettes[paletteIdx][colorIdx] = decodeCRAMColor(word)
		}
	}
}

func (c *Colors) Palette(idx uint8) *Palette {
	return &c.palettes[idx]
}

func (c *Colors) Color(paletteIdx, colorIdx uint8) color.RGBA {
	return c.palettes[paletteIdx][colorIdx]
}

func decodeCRAMColor(word uint16) color.RGBA {
	return color.RGBA{
		R: levels[word>>1&7],
		G: levels[word>>5&7],
		B: levels[word>>9&7],
		A: 255,
	}
}
