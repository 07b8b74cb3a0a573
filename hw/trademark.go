package hw

import (
	"megado/emu/log"
	"megado/hw/hwio"
)

const (
	TrademarkBegin = 0xA14000
	TrademarkEnd   = 0xA14003

	trademarkValue = 0x53454741 // "SEGA"
)

// Trademark is the TMSS lock register: licensed software proves itself by
// writing the ASCII string "SEGA" as one long.
type Trademark struct{}

func NewTrademark() *Trademark {
	return &Trademark{}
}

func (t *Trademark) Read(addr uint32, p []byte) error {
	return hwio.Errorf(hwio.ProtectedRead, "protected read address: %06x size: %x", addr, len(p))
}

func (t *Trademark) Write(addr uint32, p []byte) error {
	if len(p) != 4 {
		return hwio.Errorf(hwio.InvalidWrite, "invalid trademark write size: %x", len(p))
	}
	value := uint32(p[0])<<24 | uint32(p[1])<<16 | uint32(p[2])<<8 | uint32(p[3])
	if value != trademarkValue {
		return hwio.Errorf(hwio.InvalidWrite, "invalid trademark write value: %08x", value)
	}
	log.ModMem.DebugZ("trademark activated").End()
	return nil
}
