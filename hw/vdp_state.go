package hw

import (
	"megado/hw/snapshot"
)

// DumpState captures the whole VDP as a snapshot for the diagnostic
// collaborator.
func (v *VDP) DumpState() *snapshot.VDP {
	s := &snapshot.VDP{}
	copy(s.Registers[:], v.registers[:])
	copy(s.VRAM[:], v.vram[:])
	copy(s.VSRAM[:], v.vsram[:])
	copy(s.CRAM[:], v.cram[:])
	return s
}

// ApplyState restores a snapshot. Register values are replayed through the
// control port so every derived field recomputes; the RAMs are copied
// verbatim afterwards.
func (v *VDP) ApplyState(s *snapshot.VDP) {
	for i, val := range s.Registers {
		_ = v.writeRegister(uint16(regFirst+i)<<8 | uint16(val))
	}
	copy(v.registers[:], s.Registers[:])
	copy(v.vram[:], s.VRAM[:])
	copy(v.vsram[:], s.VSRAM[:])
	copy(v.cram[:], s.CRAM[:])
}
