// Package emu assembles the console out of its parts and drives the
// instruction loop.
package emu

import (
	"context"
	"fmt"
	"io"

	"megado/emu/log"
	"megado/hw"
	"megado/hw/hwio"
	"megado/hw/video"
	"megado/m68k"
	"megado/rom"
)

// StepResult says what one call to Step did.
type StepResult uint8

const (
	Executed StepResult = iota
	VBlankInterrupt
)

// MegaDrive is the whole machine: the bus with its devices, the CPU
// registers, the interrupt pacer and the renderer.
type MegaDrive struct {
	ROM *rom.Rom

	Bus        *hwio.Bus
	VDP        *hw.VDP
	Controller *hw.Controller
	Renderer   *video.Renderer

	Regs m68k.Registers

	vblank *VBlankHandler

	renderDisabled bool

	// Non-nil when execution tracing is enabled.
	traceOut io.Writer
}

// PowerUp wires the device table in decode order and initializes PC and
// the stack pointer from the rom's vector table.
func PowerUp(r *rom.Rom) (*MegaDrive, error) {
	bus := hwio.NewBus("m68k")

	md := &MegaDrive{
		ROM:        r,
		Bus:        bus,
		Controller: hw.NewController(),
	}
	md.VDP = hw.NewVDP(bus)
	md.Renderer = video.NewRenderer(md.VDP)

	romRange := r.Metadata.ROMRange
	bus.Map(romRange.Begin, romRange.End, hw.NewROM(r.Data))
	bus.Map(hw.Z80RAMBegin, hw.Z80RAMEnd, hw.NewZ80RAM())
	bus.Map(hw.YM2612Begin, hw.YM2612End, hw.NewYM2612())
	bus.Map(hw.ControllerBegin, hw.ControllerEnd, md.Controller)
	bus.Map(hw.Z80ControlBegin, hw.Z80ControlEnd, hw.NewZ80Control())
	bus.Map(hw.SRAMRegisterBegin, hw.SRAMRegisterEnd, hw.NewSRAMRegister())
	bus.Map(hw.TrademarkBegin, hw.TrademarkEnd, hw.NewTrademark())
	bus.Map(hw.VDPBegin, hw.VDPEnd, md.VDP)
	bus.Map(hw.PSGBegin, hw.PSGEnd, hw.NewPSG())
	bus.Map(hw.WorkRAMBegin, hw.WorkRAMEnd, hw.NewWorkRAM())

	md.Regs.USP = r.VectorTable.ResetSP
	md.Regs.PC = r.VectorTable.ResetPC

	md.vblank = NewVBlankHandler(r.VectorTable.VBlankPC, &md.Regs, bus, md.VDP)
	md.vblank.ResetTime()

	log.ModEmu.InfoZ("powered up").
		String("title", r.Metadata.OverseasTitle).
		Hex24("reset_pc", r.VectorTable.ResetPC).
		Hex24("vblank_pc", r.VectorTable.VBlankPC).
		End()
	return md, nil
}

func (md *MegaDrive) ctx() m68k.Context {
	return m68k.Context{Regs: &md.Regs, Bus: md.Bus}
}

// SetGameSpeed scales the vblank pacing.
func (md *MegaDrive) SetGameSpeed(speed float64) {
	md.vblank.SetGameSpeed(speed)
}

// ResetInterruptTime re-anchors the vblank clock, for use when execution
// resumes after a pause.
func (md *MegaDrive) ResetInterruptTime() {
	md.vblank.ResetTime()
}

// SetTraceOutput enables per-instruction execution logging.
func (md *MegaDrive) SetTraceOutput(w io.Writer) {
	md.traceOut = w
}

// SetRenderingDisabled stops Run from compositing a frame on each vblank.
func (md *MegaDrive) SetRenderingDisabled(disabled bool) {
	md.renderDisabled = disabled
}

// Step performs one architectural step: inject a due vblank, or decode and
// execute one instruction. On error the machine state is left intact at
// the failing instruction boundary for inspection.
func (md *MegaDrive) Step() (StepResult, error) {
	fired, err := md.vblank.Check()
	if err != nil {
		return 0, err
	}
	if fired {
		return VBlankInterrupt, nil
	}

	beginPC := md.Regs.PC
	inst, err := m68k.Decode(md.ctx())
	if err != nil {
		return 0, err
	}

	if md.traceOut != nil {
		fmt.Fprintf(md.traceOut, "%06x  %-32s SR=[%s]\n", beginPC, inst.String(), md.Regs.SR)
	}

	if err := inst.Execute(md.ctx()); err != nil {
		log.ModCPU.ErrorZ("execute error").
			Hex24("pc", beginPC).
			Error("err", err).
			End()
		return 0, err
	}
	return Executed, nil
}

// Run steps the machine until the context is canceled or an error stops
// the CPU.
func (md *MegaDrive) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		res, err := md.Step()
		if err != nil {
			return err
		}
		if res == VBlankInterrupt && !md.renderDisabled {
			// the frame buffer is ready for whoever displays it
			md.Renderer.Update()
		}
	}
}

// InstructionInfo describes the instruction at the current PC without
// executing it; registers and memory are left untouched.
type InstructionInfo struct {
	PC    uint32
	Bytes []byte
	Text  string
}

func (md *MegaDrive) InstructionInfo() (InstructionInfo, error) {
	beginPC := md.Regs.PC
	inst, err := m68k.Decode(md.ctx())
	endPC := md.Regs.PC
	md.Regs.PC = beginPC
	if err != nil {
		return InstructionInfo{}, err
	}

	raw := make([]byte, endPC-beginPC)
	if err := md.Bus.Read(beginPC, raw); err != nil {
		return InstructionInfo{}, err
	}
	return InstructionInfo{PC: beginPC, Bytes: raw, Text: inst.String()}, nil
}
