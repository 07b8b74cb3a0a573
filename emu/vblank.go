package emu

import (
	"time"

	"megado/emu/log"
	"megado/hw"
	"megado/hw/hwio"
	"megado/m68k"
)

const (
	vblankInterruptLevel = 6

	// NTSC refresh
	framePeriod = time.Second / 60
)

// VBlankHandler paces the vertical-blank interrupt off the wall clock: it
// fires when a frame period has elapsed since the last fire, never queues
// missed frames, and never sleeps.
type VBlankHandler struct {
	vblankPC uint32
	regs     *m68k.Registers
	bus      hwio.Device
	vdp      *hw.VDP

	speed    float64
	prevFire time.Time

	now func() time.Time // swapped out by tests
}

func NewVBlankHandler(vblankPC uint32, regs *m68k.Registers, bus hwio.Device, vdp *hw.VDP) *VBlankHandler {
	return &VBlankHandler{
		vblankPC: vblankPC,
		regs:     regs,
		bus:      bus,
		vdp:      vdp,
		speed:    1.0,
		now:      time.Now,
	}
}

// SetGameSpeed scales the frame period: 2.0 fires vblanks twice as often.
func (h *VBlankHandler) SetGameSpeed(speed float64) {
	h.speed = speed
}

// ResetTime re-anchors the clock; the debugger calls this when execution
// resumes after a pause so the next frame isn't due immediately.
func (h *VBlankHandler) ResetTime() {
	h.prevFire = h.now()
}

// Check fires the vblank interrupt if one is due. The interrupt is
// suppressed while the VDP has it disabled or the CPU masks level 6.
func (h *VBlankHandler) Check() (bool, error) {
	if !h.vdp.VBlankInterruptEnabled() {
		return false, nil
	}
	if h.regs.SR.InterruptMask() >= vblankInterruptLevel {
		return false, nil
	}

	period := time.Duration(float64(framePeriod) / h.speed)
	now := h.now()
	if now.Sub(h.prevFire) < period {
		return false, nil
	}
	h.prevFire = now

	if err := h.fire(); err != nil {
		return false, err
	}
	return true, nil
}

// fire builds a TRAP-shaped exception frame and jumps through the vblank
// vector at interrupt level 6.
func (h *VBlankHandler) fire() error {
	regs := h.regs

	regs.SR.SetSupervisor(true)

	sp := regs.StackPtr()
	*sp -= 4
	if err := hwio.WriteLong(h.bus, *sp, regs.PC); err != nil {
		return err
	}
	*sp -= 2
	if err := hwio.WriteWord(h.bus, *sp, uint16(regs.SR)); err != nil {
		return err
	}

	regs.SR.SetInterruptMask(vblankInterruptLevel)
	regs.PC = h.vblankPC

	log.ModEmu.DebugZ("vblank interrupt").Hex24("pc", h.vblankPC).End()
	return nil
}
