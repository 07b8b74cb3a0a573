package hw

import (
	"megado/emu/log"
)

// Work RAM occupies the top of the address space. The region below
// 0xFF0000 is reserved; accesses there still work but are logged.
const (
	WorkRAMBegin = 0xC00020
	WorkRAMEnd   = 0xFFFFFF

	workRAMReserved = 0xFF0000
)

type WorkRAM struct {
	data []byte
}

func NewWorkRAM() *WorkRAM {
	return &WorkRAM{data: make([]byte, WorkRAMEnd-WorkRAMBegin+1)}
}

func (m *WorkRAM) Read(addr uint32, p []byte) error {
	if addr < workRAMReserved {
		log.ModMem.ErrorZ("read from reserved address").
			Hex24("addr", addr).
			Int("size", int64(len(p))).
			End()
	}
	copy(p, m.data[addr-WorkRAMBegin:])
	return nil
}

func (m *WorkRAM) Write(addr uint32, p []byte) error {
	if addr < workRAMReserved {
		log.ModMem.ErrorZ("write to reserved address").
			Hex24("addr", addr).
			Int("size", int64(len(p))).
			End()
	}
	copy(m.data[addr-WorkRAMBegin:], p)
	return nil
}
