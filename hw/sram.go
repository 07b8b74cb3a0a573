package hw

import (
	"megado/emu/log"
	"megado/hw/hwio"
)

const (
	SRAMRegisterBegin = 0xA130F1
	SRAMRegisterEnd   = 0xA130F1
)

// SRAMRegister is the cartridge SRAM access latch. Battery-backed SRAM
// itself is not emulated; the register only accepts the byte writes games
// use to toggle it.
type SRAMRegister struct{}

func NewSRAMRegister() *SRAMRegister {
	return &SRAMRegister{}
}

func (s *SRAMRegister) Read(addr uint32, p []byte) error {
	return hwio.Errorf(hwio.ProtectedRead, "protected read address: %06x size: %x", addr, len(p))
}

func (s *SRAMRegister) Write(addr uint32, p []byte) error {
	if len(p) != 1 {
		return hwio.Errorf(hwio.InvalidWrite, "invalid SRAM register write size: %x", len(p))
	}
	log.ModMem.DebugZ("SRAM access register written").End()
	return nil
}
