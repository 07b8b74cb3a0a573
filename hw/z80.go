package hw

import (
	"megado/emu/log"
	"megado/hw/hwio"
)

// The Z80 side of the machine is not emulated: its RAM is plain scratch
// space and the bus-request handshake just acknowledges whatever the 68000
// asks for.

const (
	Z80RAMBegin = 0xA00000
	Z80RAMEnd   = 0xA0FFFF

	z80RAMSize = 0x2000 // mirrored across the whole window

	Z80ControlBegin = 0xA11100
	Z80ControlEnd   = 0xA11201

	z80BusRequest = 0xA11100
	z80Reset      = 0xA11200
)

type Z80RAM struct {
	data [z80RAMSize]byte
}

func NewZ80RAM() *Z80RAM {
	return &Z80RAM{}
}

func (z *Z80RAM) Read(addr uint32, p []byte) error {
	for i := range p {
		p[i] = z.data[(addr+uint32(i)-Z80RAMBegin)&(z80RAMSize-1)]
	}
	return nil
}

func (z *Z80RAM) Write(addr uint32, p []byte) error {
	for i := range p {
		z.data[(addr+uint32(i)-Z80RAMBegin)&(z80RAMSize-1)] = p[i]
	}
	return nil
}

// Z80Control implements the bus-request handshake: each write flips the
// stored value between 0x100 and 0x000, which is what polling games expect
// to observe.
type Z80Control struct {
	busValue uint16
}

func NewZ80Control() *Z80Control {
	return &Z80Control{}
}

func (z *Z80Control) Read(addr uint32, p []byte) error {
	if len(p) == 2 && addr == z80BusRequest {
		log.ModMem.DebugZ("Z80 bus request read").Hex16("val", z.busValue).End()
		p[0] = uint8(z.busValue >> 8)
		p[1] = uint8(z.busValue)
		return nil
	}
	// a single byte is fine too
	if len(p) == 1 && addr == z80BusRequest {
		p[0] = uint8(z.busValue >> 8)
		return nil
	}
	return hwio.Errorf(hwio.UnmappedRead, "unmapped z80 control read address: %06x size: %x", addr, len(p))
}

func (z *Z80Control) Write(addr uint32, p []byte) error {
	if len(p) == 2 && addr == z80BusRequest {
		z.busValue = uint16(p[0])<<8 | uint16(p[1])
		log.ModMem.DebugZ("Z80 bus request write").Hex16("val", z.busValue).End()
		if z.busValue == 0x100 {
			z.busValue = 0x000
		} else {
			z.busValue = 0x100
		}
		return nil
	}
	if len(p) == 2 && addr == z80Reset {
		log.ModMem.DebugZ("Z80 reset write").End()
		return nil
	}
	return hwio.Errorf(hwio.UnmappedWrite, "unmapped z80 control write address: %06x size: %x", addr, len(p))
}
