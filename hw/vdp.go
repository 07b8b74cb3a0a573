package hw

import (
	"megado/emu/log"
	"megado/hw/hwio"
)

// VDP port map. The device also answers the HV counter mirrors up to
// 0xC0000E.
const (
	VDPBegin = 0xC00000
	VDPEnd   = 0xC0000E

	vdpData1 = 0xC00000
	vdpData2 = 0xC00002
	vdpCtrl1 = 0xC00004
	vdpCtrl2 = 0xC00006

	hvCounter1 = 0xC00008
	hvCounter4 = 0xC0000E
)

const (
	VRAMSize  = 65536
	VSRAMSize = 80
	CRAMSize  = 128

	// VDP registers 0x80..0x97
	VDPRegisterCount = 24
)

// address scale units for the table-address registers
const (
	spriteAddressScale  = 0x200
	hscrollAddressScale = 0x400
	windowAddressScale  = 0x800
	planeAddressScale   = 0x2000
)

// VDP register numbers as seen in a control-port register write (the top
// three bits of the word are 100).
const (
	regModeSet1            = 0x80
	regModeSet2            = 0x81
	regPlaneATableAddress  = 0x82
	regWindowTableAddress  = 0x83
	regPlaneBTableAddress  = 0x84
	regSpriteTableAddress  = 0x85
	regUnused86            = 0x86
	regBackgroundColor     = 0x87
	regUnused88            = 0x88
	regUnused89            = 0x89
	regHblankInterruptRate = 0x8A
	regModeSet3            = 0x8B
	regModeSet4            = 0x8C
	regHscrollTableAddress = 0x8D
	regUnused8E            = 0x8E
	regAutoIncrement       = 0x8F
	regPlaneSize           = 0x90
	regWindowXDivision     = 0x91
	regWindowYDivision     = 0x92
	regDMALengthLow        = 0x93
	regDMALengthHigh       = 0x94
	regDMASourceLow        = 0x95
	regDMASourceMiddle     = 0x96
	regDMASourceHigh       = 0x97

	regFirst = regModeSet1
	regLast  = regDMASourceHigh
)

type DMAType uint8

const (
	DMAMemoryToVRAM DMAType = iota
	DMAVRAMFill
	DMAVRAMCopy
)

type RAMKind uint8

const (
	RAMKindVRAM RAMKind = iota
	RAMKindVSRAM
	RAMKindCRAM
)

// HorizontalScrollMode selects how Plane A/B horizontal scrolling is
// sampled from the hscroll table.
type HorizontalScrollMode uint8

const (
	HScrollFull HorizontalScrollMode = iota
	HScrollEightLines
	HScrollEveryTile
	HScrollEveryLine
)

// VerticalScrollMode selects how vertical scrolling is sampled from VSRAM.
type VerticalScrollMode uint8

const (
	VScrollFull VerticalScrollMode = iota
	VScrollEveryTwoTiles
)

// VDP is the video display processor: a register bank, three dedicated
// RAMs, a two-word control-port address latch and a DMA engine that reads
// back through the system bus.
type VDP struct {
	// data derived from registers
	vblankInterruptEnabled bool
	allowDMA               bool
	dmaLengthWords         uint32 // in words, not bytes
	dmaSourceWords         uint32 // in words, not bytes
	dmaType                DMAType
	autoIncrement          uint8
	width                  uint8 // in tiles
	height                 uint8 // in tiles
	tilemapWidth           uint8
	tilemapHeight          uint8
	planeATableAddress     uint32
	planeBTableAddress     uint32
	windowTableAddress     uint32
	spriteTableAddress     uint32
	hscrollTableAddress    uint32
	hscrollMode            HorizontalScrollMode
	vscrollMode            VerticalScrollMode
	windowXSplit           int
	windowDisplayRight     bool
	windowYSplit           int
	windowDisplayBelow     bool
	backgroundPalette      uint8
	backgroundIndex        uint8

	// video RAM address latch
	firstHalf    uint16
	hasFirstHalf bool
	useDMA       bool
	ramKind      RAMKind
	ramAddress   uint16

	registers [VDPRegisterCount]uint8

	vram  [VRAMSize]uint8
	vsram [VSRAMSize]uint8
	cram  [CRAMSize]uint8

	// the DMA engine reads its source data through here
	bus hwio.Device
}

func NewVDP(bus hwio.Device) *VDP {
	return &VDP{bus: bus}
}

// Accessors used by the renderer and the interrupt pacer.

func (v *VDP) VBlankInterruptEnabled() bool               { return v.vblankInterruptEnabled }
func (v *VDP) TileWidth() uint8                           { return v.width }
func (v *VDP) TileHeight() uint8                          { return v.height }
func (v *VDP) TilemapWidth() uint8                        { return v.tilemapWidth }
func (v *VDP) TilemapHeight() uint8                       { return v.tilemapHeight }
func (v *VDP) PlaneATableAddress() uint32                 { return v.planeATableAddress }
func (v *VDP) PlaneBTableAddress() uint32                 { return v.planeBTableAddress }
func (v *VDP) WindowTableAddress() uint32                 { return v.windowTableAddress }
func (v *VDP) SpriteTableAddress() uint32                 { return v.spriteTableAddress }
func (v *VDP) HscrollTableAddress() uint32                { return v.hscrollTableAddress }
func (v *VDP) HorizontalScroll() HorizontalScrollMode     { return v.hscrollMode }
func (v *VDP) VerticalScroll() VerticalScrollMode         { return v.vscrollMode }
func (v *VDP) WindowXSplit() (split int, displayRight bool) { return v.windowXSplit, v.windowDisplayRight }
func (v *VDP) WindowYSplit() (split int, displayBelow bool) { return v.windowYSplit, v.windowDisplayBelow }
func (v *VDP) BackgroundColorPalette() uint8              { return v.backgroundPalette }
func (v *VDP) BackgroundColorIndex() uint8                { return v.backgroundIndex }

// VRAM, VSRAM and CRAM expose the raw video memories. The renderer only
// reads them, between instructions, so no locking is involved.
func (v *VDP) VRAM() []byte  { return v.vram[:] }
func (v *VDP) VSRAM() []byte { return v.vsram[:] }
func (v *VDP) CRAM() []byte  { return v.cram[:] }

func (v *VDP) ram() []byte {
	switch v.ramKind {
	case RAMKindVSRAM:
		return v.vsram[:]
	case RAMKindCRAM:
		return v.cram[:]
	}
	return v.vram[:]
}

func (v *VDP) Read(addr uint32, p []byte) error {
	if len(p) == 1 {
		addr--
	}

	for i := 0; i < len(p); i += 2 {
		switch a := addr + uint32(i); a {
		case vdpData1, vdpData2:
			ram := v.ram()
			p[i] = ramByte(ram, v.ramAddress)
			v.ramAddress++
			if len(p) > 1 {
				p[i+1] = ramByte(ram, v.ramAddress)
				v.ramAddress++
			}
		case vdpCtrl1, vdpCtrl2:
			status := v.readStatus()
			if len(p) == 1 {
				p[i] = uint8(status)
			} else {
				p[i] = uint8(status >> 8)
				p[i+1] = uint8(status)
			}
		default:
			if a < hvCounter1-1 || a > hvCounter4 {
				return hwio.Errorf(hwio.InvalidRead, "invalid VDP read address: %06x size: %d", addr, len(p))
			}
			// HV counter is not implemented, reads as zero
			p[i] = 0
			if len(p) > 1 {
				p[i+1] = 0
			}
		}
	}

	return nil
}

func ramByte(ram []byte, addr uint16) uint8 {
	if int(addr) < len(ram) {
		return ram[addr]
	}
	return 0
}

func (v *VDP) Write(addr uint32, p []byte) error {
	for i := 0; i < len(p); i += 2 {
		var word uint16
		if i+1 < len(p) {
			word = uint16(p[i])<<8 | uint16(p[i+1])
		} else {
			word = uint16(p[i])
		}
		switch addr + uint32(i) {
		case vdpData1, vdpData2:
			if err := v.writeData(word); err != nil {
				return err
			}
		case vdpCtrl1, vdpCtrl2:
			if err := v.writeControl(word); err != nil {
				return err
			}
		default:
			return hwio.Errorf(hwio.InvalidWrite, "invalid VDP write address: %06x size: %d", addr, len(p))
		}
	}

	return nil
}

// writeControl handles the 16-bit control port: either a register write
// (top three bits 100) or one half of the two-word address/command latch.
func (v *VDP) writeControl(command uint16) error {
	if command&0b1110_0000_0000_0000 == 0b1000_0000_0000_0000 {
		return v.writeRegister(command)
	}

	if !v.hasFirstHalf {
		v.firstHalf = command
		v.hasFirstHalf = true
		return nil
	}

	value := uint32(v.firstHalf)<<16 | uint32(command)

	// 14 low address bits come from the first word, the top two are
	// rescued from the bottom of the second
	v.ramAddress = uint16(value&0x3FFF0000>>16) | uint16(value&0x3)<<14

	cd0 := value >> 30 & 1
	cd1 := value >> 31 & 1
	cd2 := value >> 4 & 1
	cd3 := value >> 5 & 1
	cd5 := value >> 7 & 1

	v.useDMA = cd5 != 0 && v.allowDMA

	mask := cd3<<3 | cd2<<2 | cd1<<1 | cd0
	switch mask {
	case 0b0001, 0b0000: // write, read
		v.ramKind = RAMKindVRAM
	case 0b0011, 0b1000:
		v.ramKind = RAMKindCRAM
	case 0b0101, 0b0100:
		v.ramKind = RAMKindVSRAM
	default:
		return hwio.Errorf(hwio.InvalidWrite, "invalid RAM kind value: %08x", value)
	}

	log.ModVDP.DebugZ("set RAM address").
		Hex16("addr", v.ramAddress).
		Uint("kind", uint64(v.ramKind)).
		Bool("dma", v.useDMA).
		End()

	if v.useDMA && v.dmaType == DMAVRAMCopy {
		return hwio.Errorf(hwio.InvalidWrite, "unsupported DMA type: %08x", value)
	}

	if v.useDMA && v.dmaType == DMAMemoryToVRAM {
		if err := v.dmaMemoryToVRAM(); err != nil {
			return err
		}
		v.useDMA = false
	}

	v.hasFirstHalf = false
	return nil
}

// dmaMemoryToVRAM performs an immediate bus-to-VRAM transfer. With the
// autoincrement at 2 the whole block copies in one bus read; any other
// step forces a word-by-word copy.
func (v *VDP) dmaMemoryToVRAM() error {
	sourceStart := v.dmaSourceWords << 1
	length := v.dmaLengthWords << 1

	log.ModDMA.DebugZ("memory to vram DMA").
		Hex24("src", sourceStart).
		Hex24("len", length).
		Hex16("dest", v.ramAddress).
		Hex8("inc", v.autoIncrement).
		End()

	ram := v.ram()
	if v.autoIncrement == 2 {
		safeLen := length
		if avail := uint32(len(ram)) - uint32(v.ramAddress); int(v.ramAddress) >= len(ram) {
			safeLen = 0
		} else if safeLen > avail {
			safeLen = avail
		}
		if err := v.bus.Read(sourceStart, ram[uint32(v.ramAddress):uint32(v.ramAddress)+safeLen]); err != nil {
			return err
		}
		v.ramAddress += uint16(length)
	} else {
		for i := uint32(0); i < v.dmaLengthWords; i++ {
			if int(v.ramAddress)+2 <= len(ram) {
				if err := v.bus.Read(sourceStart+i*2, ram[v.ramAddress:v.ramAddress+2]); err != nil {
					return err
				}
			}
			v.ramAddress += uint16(v.autoIncrement)
		}
	}
	return nil
}

// writeData handles the 16-bit data port: either the fill byte of a
// pending VRAM-fill DMA, or a plain RAM write at the latched address.
func (v *VDP) writeData(data uint16) error {
	if v.useDMA && v.dmaType != DMAVRAMFill {
		return hwio.Errorf(hwio.InvalidWrite, "unsupported DMA type on data port write: %04x", data)
	}

	if v.useDMA {
		ram := v.ram()
		length := v.dmaLengthWords << 1
		log.ModDMA.DebugZ("vram fill").
			Hex16("data", data).
			Hex16("begin", v.ramAddress).
			Hex24("len", length).
			Hex8("inc", v.autoIncrement).
			End()

		// the fill byte arrives through a word port: with a stride above
		// one the start address parity flips (observed with "Contra Hard
		// Corps")
		if v.autoIncrement > 1 {
			if v.ramAddress%2 == 0 {
				v.ramAddress++
			} else {
				v.ramAddress--
			}
		}

		for i := uint32(0); i < length; i++ {
			if int(v.ramAddress) < len(ram) {
				ram[v.ramAddress] = uint8(data)
			}
			v.ramAddress += uint16(v.autoIncrement)
		}
		v.useDMA = false
		return nil
	}

	ram := v.ram()
	if int(v.ramAddress)+1 < len(ram) {
		ram[v.ramAddress] = uint8(data >> 8)
		ram[v.ramAddress+1] = uint8(data)
	}
	v.ramAddress += uint16(v.autoIncrement)
	return nil
}

func (v *VDP) writeRegister(command uint16) error {
	kind := uint8(command >> 8)
	value := uint8(command)

	switch kind {
	case regModeSet1:
		log.ModVDP.DebugZ("mode1 set").Hex8("val", value).End()
	case regModeSet2:
		v.allowDMA = value&(1<<4) != 0
		v.vblankInterruptEnabled = value&(1<<5) != 0
		if value&(1<<3) != 0 {
			v.height = 30
		} else {
			v.height = 28
		}
		log.ModVDP.DebugZ("mode2 set").
			Bool("allow_dma", v.allowDMA).
			Bool("vblank_int", v.vblankInterruptEnabled).
			Uint("height", uint64(v.height)).
			End()
	case regPlaneATableAddress:
		v.planeATableAddress = planeAddressScale * uint32(value>>3&0xF)
		log.ModVDP.DebugZ("plane A table address").Hex24("addr", v.planeATableAddress).End()
	case regWindowTableAddress:
		v.windowTableAddress = windowAddressScale * uint32(value>>1&0x3F)
		log.ModVDP.DebugZ("window table address").Hex24("addr", v.windowTableAddress).End()
	case regPlaneBTableAddress:
		v.planeBTableAddress = planeAddressScale * uint32(value&0xF)
		log.ModVDP.DebugZ("plane B table address").Hex24("addr", v.planeBTableAddress).End()
	case regSpriteTableAddress:
		v.spriteTableAddress = spriteAddressScale * uint32(value)
		log.ModVDP.DebugZ("sprite table address").Hex24("addr", v.spriteTableAddress).End()
	case regBackgroundColor:
		v.backgroundIndex = value & 0xF
		v.backgroundPalette = value >> 4 & 3
		log.ModVDP.DebugZ("background color").
			Uint("palette", uint64(v.backgroundPalette)).
			Uint("index", uint64(v.backgroundIndex)).
			End()
	case regHblankInterruptRate:
		log.ModVDP.DebugZ("hblank interrupt rate").Uint("rate", uint64(value)).End()
	case regModeSet3:
		v.hscrollMode = HorizontalScrollMode(value & 3)
		v.vscrollMode = VerticalScrollMode(value >> 2 & 1)
		log.ModVDP.DebugZ("mode3 set").
			Uint("hscroll", uint64(v.hscrollMode)).
			Uint("vscroll", uint64(v.vscrollMode)).
			End()
	case regModeSet4:
		if value&1 != 0 {
			v.width = 40
		} else {
			v.width = 32
		}
		log.ModVDP.DebugZ("mode4 set").Uint("width", uint64(v.width)).End()
	case regHscrollTableAddress:
		v.hscrollTableAddress = hscrollAddressScale * uint32(value&0x7F)
		log.ModVDP.DebugZ("hscroll table address").Hex24("addr", v.hscrollTableAddress).End()
	case regAutoIncrement:
		v.autoIncrement = value
		log.ModVDP.DebugZ("auto increment").Uint("amount", uint64(value)).End()
	case regPlaneSize:
		v.tilemapWidth = planeSizeValue(value & 3)
		v.tilemapHeight = planeSizeValue(value >> 4 & 3)
		log.ModVDP.DebugZ("plane size").
			Uint("width", uint64(v.tilemapWidth)).
			Uint("height", uint64(v.tilemapHeight)).
			End()
	case regWindowXDivision:
		v.windowXSplit = int(value&0x1F) * 16
		v.windowDisplayRight = value&(1<<7) != 0
		log.ModVDP.DebugZ("window X division").
			Int("split", int64(v.windowXSplit)).
			Bool("right", v.windowDisplayRight).
			End()
	case regWindowYDivision:
		v.windowYSplit = int(value&0x1F) * 8
		v.windowDisplayBelow = value&(1<<7) != 0
		log.ModVDP.DebugZ("window Y division").
			Int("split", int64(v.windowYSplit)).
			Bool("below", v.windowDisplayBelow).
			End()
	case regDMALengthLow:
		v.dmaLengthWords = v.dmaLengthWords&0xFF00 | uint32(value)
	case regDMALengthHigh:
		v.dmaLengthWords = v.dmaLengthWords&0x00FF | uint32(value)<<8
	case regDMASourceLow:
		v.dmaSourceWords = v.dmaSourceWords&0xFFFF00 | uint32(value)
	case regDMASourceMiddle:
		v.dmaSourceWords = v.dmaSourceWords&0xFF00FF | uint32(value)<<8
	case regDMASourceHigh:
		v.dmaSourceWords = v.dmaSourceWords&0x00FFFF | uint32(value&0x3F)<<16
		switch value >> 6 & 3 {
		case 0b00:
			v.dmaType = DMAMemoryToVRAM
		case 0b01:
			v.dmaType = DMAMemoryToVRAM
			v.dmaSourceWords |= 1 << 22
		case 0b10:
			v.dmaType = DMAVRAMFill
		case 0b11:
			v.dmaType = DMAVRAMCopy
		}
		log.ModDMA.DebugZ("DMA source high").
			Hex24("src", v.dmaSourceWords).
			Uint("type", uint64(v.dmaType)).
			End()
	case regUnused86, regUnused88, regUnused89, regUnused8E:
		// unused registers, stored but otherwise ignored
	default:
		return hwio.Errorf(hwio.InvalidWrite, "invalid VDP register command: %04x", command)
	}
	v.registers[kind-regFirst] = value
	return nil
}

func planeSizeValue(bits uint8) uint8 {
	switch bits {
	case 0b01:
		return 64
	case 0b11:
		return 128
	}
	return 32
}

// readStatus returns the status word: NTSC, DMA not busy, not in hblank,
// in vblank, even frame, no collision, no sprite overflow, no pending
// interrupt, FIFO not full and not empty. The vblank bit is a constant
// placeholder, it is not derived from timing.
func (v *VDP) readStatus() uint16 {
	const status = 1 << 3 // in vblank
	return status
}
