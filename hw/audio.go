package hw

import (
	"megado/emu/log"
	"megado/hw/hwio"
)

// Sound hardware is stubbed: the YM2612 and the PSG acknowledge accesses
// without producing audio.

const (
	YM2612Begin = 0xA04000
	YM2612End   = 0xA04003

	PSGBegin = 0xC00011
	PSGEnd   = 0xC00012
)

type YM2612 struct{}

func NewYM2612() *YM2612 {
	return &YM2612{}
}

func (y *YM2612) Read(addr uint32, p []byte) error {
	log.ModSound.DebugZ("YM2612 read").Hex24("addr", addr).End()
	clear(p)
	return nil
}

func (y *YM2612) Write(addr uint32, p []byte) error {
	log.ModSound.DebugZ("YM2612 write").Hex24("addr", addr).Hex8("val", p[0]).End()
	return nil
}

type PSG struct{}

func NewPSG() *PSG {
	return &PSG{}
}

func (s *PSG) Read(addr uint32, p []byte) error {
	return hwio.Errorf(hwio.ProtectedRead, "protected read address: %06x size: %x", addr, len(p))
}

func (s *PSG) Write(addr uint32, p []byte) error {
	log.ModSound.DebugZ("PSG write").Hex8("val", p[0]).End()
	return nil
}
