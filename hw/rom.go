// Package hw implements the memory-mapped devices of the console: ROM,
// work RAM, the Z80 area, controller ports, the trademark register, the
// sound chip stubs and the VDP.
package hw

import (
	"megado/emu/log"
)

// ROM is the cartridge, mapped from address zero over the range declared in
// its own header. Reads beyond the image return zeros; writes are logged
// and swallowed because some games do them.
type ROM struct {
	data []byte
}

func NewROM(data []byte) *ROM {
	return &ROM{data: data}
}

func (r *ROM) Read(addr uint32, p []byte) error {
	for i := range p {
		if int(addr)+i < len(r.data) {
			p[i] = r.data[int(addr)+i]
		} else {
			p[i] = 0
		}
	}
	return nil
}

func (r *ROM) Write(addr uint32, p []byte) error {
	log.ModMem.ErrorZ("write to ROM").
		Hex24("addr", addr).
		Int("size", int64(len(p))).
		End()
	return nil
}
