package video

import (
	"image/color"

	"megado/emu/log"
	"megado/hw"
)

const (
	tileDimension   = 8
	bytesPerPixel   = 4
	vramBytesPerTile = 32
)

type planeType uint8

const (
	planeA planeType = iota
	planeB
	planeWindow
)

// Renderer composites the current VDP state into an RGBA canvas of
// width*8 x height*8 pixels.
type Renderer struct {
	vdp *hw.VDP

	colors  Colors
	sprites []Sprite

	width  int // in tiles
	height int // in tiles
	canvas []uint8

	hscrollModeWarned bool
}

func NewRenderer(vdp *hw.VDP) *Renderer {
	return &Renderer{
		vdp:     vdp,
		sprites: make([]Sprite, 0, maxSprites),
	}
}

// Width returns the canvas width in pixels.
func (r *Renderer) Width() int { return r.width * tileDimension }

// Height returns the canvas height in pixels.
func (r *Renderer) Height() int { return r.height * tileDimension }

// Colors exposes the decoded palettes of the last Update.
func (r *Renderer) Colors() *Colors { return &r.colors }

// Update redraws the whole canvas from VDP state and returns it as RGBA
// bytes. For each pixel and each priority (high before low) the first
// non-transparent layer wins: sprites, then the window plane, then plane
// A, then plane B; if everything is transparent the backdrop color shows.
func (r *Renderer) Update() []uint8 {
	r.checkSize()
	r.colors.Update(r.vdp.CRAM())
	r.sprites = readSprites(r.vdp.VRAM(), r.vdp.SpriteTableAddress(), r.sprites)

	w := r.Width()
	h := r.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.drawPixel(x, y)
		}
	}
	return r.canvas
}

func (r *Renderer) drawPixel(x, y int) {
	for _, priority := range [2]bool{true, false} {
		if c, ok := r.spritePixel(x, y, priority); ok {
			r.setPixel(x, y, c)
			return
		}
		for _, plane := range [3]planeType{planeWindow, planeA, planeB} {
			if c, ok := r.planePixel(plane, x, y, priority); ok {
				r.setPixel(x, y, c)
				return
			}
		}
	}

	// backdrop
	r.setPixel(x, y, r.colors.Color(r.vdp.BackgroundColorPalette(), r.vdp.BackgroundColorIndex()))
}

func (r *Renderer) setPixel(x, y int, c color.RGBA) {
	off := (y*r.Width() + x) * bytesPerPixel
	r.canvas[off] = c.R
	r.canvas[off+1] = c.G
	r.canvas[off+2] = c.B
	r.canvas[off+3] = 255
}

// spritePixel scans the sprite list in order; the first sprite of the
// wanted priority covering (x, y) with a non-transparent texel wins.
func (r *Renderer) spritePixel(x, y int, priority bool) (color.RGBA, bool) {
	vram := r.vdp.VRAM()
	for i := range r.sprites {
		sprite := &r.sprites[i]
		if sprite.Priority != priority {
			continue
		}

		left := sprite.X - 128
		right := left + sprite.Width*tileDimension
		top := sprite.Y - 128
		bottom := top + sprite.Height*tileDimension

		if x < left || x >= right || y < top || y >= bottom {
			continue
		}

		xPos := x - left
		if sprite.FlipH {
			xPos = right - x - 1
		}
		yPos := y - top
		if sprite.FlipV {
			yPos = bottom - y - 1
		}

		// sprite tiles are laid out column-major
		tileX := xPos / tileDimension
		tileY := yPos / tileDimension
		tileID := int(sprite.TileID) + tileX*sprite.Height + tileY

		colorIdx := tilePixel(vram, tileID, xPos%tileDimension, yPos%tileDimension)
		if colorIdx != 0 {
			return r.colors.Color(sprite.Palette, colorIdx), true
		}
	}
	return color.RGBA{}, false
}

func (r *Renderer) planePixel(plane planeType, x, y int, priority bool) (color.RGBA, bool) {
	vdp := r.vdp
	vram := vdp.VRAM()

	var tableAddress uint32
	switch plane {
	case planeA:
		tableAddress = vdp.PlaneATableAddress()
	case planeB:
		tableAddress = vdp.PlaneBTableAddress()
	case planeWindow:
		tableAddress = vdp.WindowTableAddress()
	}

	if plane == planeWindow {
		// the window is an unscrolled plane shown only on its side of the
		// X or Y split
		if xSplit, displayRight := vdp.WindowXSplit(); xSplit != 0 || displayRight {
			if displayRight && x < xSplit {
				return color.RGBA{}, false
			}
			if !displayRight && x >= xSplit {
				return color.RGBA{}, false
			}
		} else {
			ySplit, displayBelow := vdp.WindowYSplit()
			if displayBelow && y < ySplit {
				return color.RGBA{}, false
			}
			if !displayBelow && y >= ySplit {
				return color.RGBA{}, false
			}
		}
	} else {
		x, y = r.applyScroll(plane, x, y)
	}

	tilemapW := int(vdp.TilemapWidth())
	tilemapH := int(vdp.TilemapHeight())
	if tilemapW == 0 || tilemapH == 0 {
		return color.RGBA{}, false
	}

	// wrap into the plane before splitting into tile and texel
	x = wrap(x, tilemapW*tileDimension)
	y = wrap(y, tilemapH*tileDimension)

	tileX := x / tileDimension
	tileY := y / tileDimension

	entryOff := tableAddress + 2*uint32(tileY*tilemapW+tileX)
	if int(entryOff)+2 > len(vram) {
		return color.RGBA{}, false
	}
	b0, b1 := vram[entryOff], vram[entryOff+1]

	entryPriority := b0&(1<<7) != 0
	if entryPriority != priority {
		return color.RGBA{}, false
	}

	tileID := int(b0&7)<<8 | int(b1)

	insideX := x % tileDimension
	if b0&(1<<3) != 0 { // flip horizontally
		insideX = 7 - insideX
	}
	insideY := y % tileDimension
	if b0&(1<<4) != 0 { // flip vertically
		insideY = 7 - insideY
	}

	colorIdx := tilePixel(vram, tileID, insideX, insideY)
	if colorIdx == 0 {
		return color.RGBA{}, false
	}
	palette := b0 >> 5 & 3
	return r.colors.Color(palette, colorIdx), true
}

// applyScroll offsets a plane coordinate by the horizontal scroll (from
// the hscroll table in VRAM) and the vertical scroll (from VSRAM),
// according to the current scroll modes.
func (r *Renderer) applyScroll(plane planeType, x, y int) (int, int) {
	vdp := r.vdp
	vram := vdp.VRAM()
	vsram := vdp.VSRAM()

	planeOff := 0
	if plane == planeB {
		planeOff = 1
	}

	hscrollWord := func(idx int) int {
		off := int(vdp.HscrollTableAddress()) + idx*2
		if off+2 > len(vram) {
			return 0
		}
		return int(int16(uint16(vram[off])<<8 | uint16(vram[off+1])))
	}

	switch vdp.HorizontalScroll() {
	case hw.HScrollFull:
		x -= hscrollWord(planeOff)
	case hw.HScrollEightLines:
		// nobody under test uses this mode; leave the plane unscrolled
		if !r.hscrollModeWarned {
			log.ModVideo.ErrorZ("unsupported horizontal scroll mode").End()
			r.hscrollModeWarned = true
		}
	case hw.HScrollEveryTile:
		x -= hscrollWord((y-y%8)*2 + planeOff)
	case hw.HScrollEveryLine:
		x -= hscrollWord(y*2 + planeOff)
	}

	vscrollWord := func(idx int) int {
		off := idx * 2
		if off+2 > len(vsram) {
			return 0
		}
		return int(int16(uint16(vsram[off])<<8 | uint16(vsram[off+1])))
	}

	switch vdp.VerticalScroll() {
	case hw.VScrollFull:
		y += vscrollWord(planeOff)
	case hw.VScrollEveryTwoTiles:
		y += vscrollWord((y/16)*2 + planeOff)
	}

	return x, y
}

// tilePixel samples a 4-bit color index out of an 8x8 tile: 32 bytes, two
// pixels per byte, MSB nibble first.
func tilePixel(vram []byte, tileID, x, y int) uint8 {
	pixelID := y*tileDimension + x
	off := tileID*vramBytesPerTile + pixelID/2
	if off < 0 || off >= len(vram) {
		return 0
	}
	b := vram[off]
	if pixelID%2 == 0 {
		return b >> 4
	}
	return b & 0xF
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func (r *Renderer) checkSize() {
	sizeChanged := false
	if w := int(r.vdp.TileWidth()); w != r.width {
		r.width = w
		sizeChanged = true
		log.ModVideo.InfoZ("set game width").Uint("tiles", uint64(w)).End()
	}
	if h := int(r.vdp.TileHeight()); h != r.height {
		r.height = h
		sizeChanged = true
		log.ModVideo.InfoZ("set game height").Uint("tiles", uint64(h)).End()
	}
	if sizeChanged {
		r.canvas = make([]uint8, r.Width()*r.Height()*bytesPerPixel)
	}
}
