// Package m68k implements an instruction-level Motorola 68000 interpreter:
// decode one opcode word (plus extension words) from the bus into an
// Instruction, then execute it against the registers and the bus.
package m68k

import (
	"megado/hw/hwio"
)

// Context is what one architectural step needs: the register file and the
// memory bus. It is borrowed for the duration of a single decode or execute
// call and holds no state of its own.
type Context struct {
	Regs *Registers
	Bus  hwio.Device
}
