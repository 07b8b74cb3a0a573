package m68k

import (
	"fmt"
)

// TargetKind enumerates the twelve 68000 effective-address modes.
type TargetKind uint8

//go:generate go tool stringer -type=TargetKind -trimprefix=Target

const (
	TargetDataRegister TargetKind = iota
	TargetAddressRegister
	TargetAddress            // (An)
	TargetAddressIncrement   // (An)+
	TargetAddressDecrement   // -(An)
	TargetAddressDisplacement // d16(An)
	TargetAddressIndex       // d8(An, Xn)
	TargetPCDisplacement     // d16(PC)
	TargetPCIndex            // d8(PC, Xn)
	TargetAbsoluteShort
	TargetAbsoluteLong
	TargetImmediate
)

// Target is a decoded operand: it knows how to compute its effective
// address, read or write through it, and apply the pre-decrement /
// post-increment side effects exactly once per instruction.
type Target struct {
	Kind     TargetKind
	Size     uint8 // operand size in bytes, drives (An)+ / -(An) stepping
	Index    uint8 // register number
	ExtWord0 uint16
	ExtWord1 uint16
	Address  uint32 // for Immediate: location of the value in the stream

	decremented   bool
	incOrDecCount uint32
}

// SetIncOrDecCount overrides how many operand-sized elements a single
// pre-decrement or post-increment step covers (MOVEM moves one per register
// in the mask).
func (t *Target) SetIncOrDecCount(count uint32) {
	t.incOrDecCount = count
}

// TryDecrementAddress performs the -(An) side effect. It latches, so
// reading and then writing through the same operand decrements only once.
func (t *Target) TryDecrementAddress(ctx Context, count uint32) {
	if count == 0 {
		count = 1
	}
	if t.Kind == TargetAddressDecrement && !t.decremented {
		reg := ctx.Regs.AReg(t.Index)

		// the stack pointer stays word-aligned
		diff := uint32(t.Size) * count
		if t.Index == 7 && diff < 2 {
			diff = 2
		}
		*reg -= diff
	}
	t.decremented = true
}

// TryIncrementAddress performs the (An)+ side effect.
func (t *Target) TryIncrementAddress(ctx Context, count uint32) {
	if count == 0 {
		count = 1
	}
	if t.Kind == TargetAddressIncrement {
		reg := ctx.Regs.AReg(t.Index)

		// the stack pointer stays word-aligned
		diff := uint32(t.Size) * count
		if t.Index == 7 && diff < 2 {
			diff = 2
		}
		*reg += diff
	}
}

// EffectiveAddress computes the address this operand refers to. PC-relative
// modes use PC-2: the PC value at the time the extension word was fetched.
func (t *Target) EffectiveAddress(ctx Context) uint32 {
	switch t.Kind {
	case TargetAddress, TargetAddressIncrement, TargetAddressDecrement:
		return *ctx.Regs.AReg(t.Index)
	case TargetAddressDisplacement:
		return *ctx.Regs.AReg(t.Index) + uint32(int32(int16(t.ExtWord0)))
	case TargetAddressIndex:
		return t.indexedAddress(ctx, *ctx.Regs.AReg(t.Index))
	case TargetPCDisplacement:
		return ctx.Regs.PC - 2 + uint32(int32(int16(t.ExtWord0)))
	case TargetPCIndex:
		return t.indexedAddress(ctx, ctx.Regs.PC-2)
	case TargetAbsoluteShort:
		return uint32(int32(int16(t.ExtWord0)))
	case TargetAbsoluteLong:
		return uint32(t.ExtWord0)<<16 + uint32(t.ExtWord1)
	case TargetImmediate:
		return t.Address
	}
	panic("effective address of register operand")
}

// indexedAddress decodes a brief extension word. Scale is hard-wired to 1:
// the base 68000 has no scaled indexing.
func (t *Target) indexedAddress(ctx Context, base uint32) uint32 {
	xregNum := uint8(t.ExtWord0>>12) & 7
	var xreg uint32
	if t.ExtWord0&(1<<15) != 0 {
		xreg = *ctx.Regs.AReg(xregNum)
	} else {
		xreg = ctx.Regs.D[xregNum]
	}

	if t.ExtWord0&(1<<11) == 0 {
		// word-sized index, sign-extended
		xreg = uint32(int32(int16(xreg)))
	}
	disp := int32(int8(t.ExtWord0))

	return base + uint32(disp) + xreg
}

// Read fills p with len(p) bytes from the operand. Register reads copy the
// low bytes of the register in big-endian order; everything else goes
// through the bus.
func (t *Target) Read(ctx Context, p []byte) error {
	t.TryDecrementAddress(ctx, t.incOrDecCount)

	readRegister := func(reg uint32) {
		for i := len(p) - 1; i >= 0; i-- {
			p[i] = uint8(reg)
			reg >>= 8
		}
	}

	switch t.Kind {
	case TargetDataRegister:
		readRegister(ctx.Regs.D[t.Index])
		return nil
	case TargetAddressRegister:
		readRegister(*ctx.Regs.AReg(t.Index))
		return nil
	}
	return ctx.Bus.Read(t.EffectiveAddress(ctx), p)
}

// ReadValue reads the operand at the given size into a 64-bit accumulator.
func (t *Target) ReadValue(ctx Context, size Size) (uint64, error) {
	var buf [8]byte
	p := buf[:size]
	if err := t.Read(ctx, p); err != nil {
		return 0, err
	}
	var res uint64
	for _, b := range p {
		res = res<<8 | uint64(b)
	}
	return res, nil
}

// Write stores len(p) bytes through the operand. Register writes replace
// only the low len(p) bytes, leaving the upper bytes untouched.
func (t *Target) Write(ctx Context, p []byte) error {
	t.TryDecrementAddress(ctx, t.incOrDecCount)

	writeRegister := func(reg *uint32) {
		var lsb, shift uint32
		for _, b := range p {
			shift += 8
			lsb = lsb<<8 | uint32(b)
		}
		if shift == 32 {
			*reg = lsb
		} else {
			*reg = *reg>>shift<<shift | lsb
		}
	}

	switch t.Kind {
	case TargetDataRegister:
		writeRegister(&ctx.Regs.D[t.Index])
		return nil
	case TargetAddressRegister:
		writeRegister(ctx.Regs.AReg(t.Index))
		return nil
	}
	return ctx.Bus.Write(t.EffectiveAddress(ctx), p)
}

// WriteSized truncates value to size bytes and writes it.
func (t *Target) WriteSized(ctx Context, value uint64, size Size) error {
	var buf [4]byte
	p := buf[:size]
	for i := int(size) - 1; i >= 0; i-- {
		p[i] = uint8(value)
		value >>= 8
	}
	return t.Write(ctx, p)
}

// WriteWord writes a 16-bit value.
func (t *Target) WriteWord(ctx Context, value uint16) error {
	return t.WriteSized(ctx, uint64(value), WordSize)
}

// WriteLong writes a 32-bit value.
func (t *Target) WriteLong(ctx Context, value uint32) error {
	return t.WriteSized(ctx, uint64(value), LongSize)
}

// ReadWord reads a 16-bit value.
func (t *Target) ReadWord(ctx Context) (uint16, error) {
	v, err := t.ReadValue(ctx, WordSize)
	return uint16(v), err
}

// ReadLong reads a 32-bit value.
func (t *Target) ReadLong(ctx Context) (uint32, error) {
	v, err := t.ReadValue(ctx, LongSize)
	return uint32(v), err
}

// ReadByte reads an 8-bit value.
func (t *Target) ReadByte(ctx Context) (uint8, error) {
	v, err := t.ReadValue(ctx, ByteSize)
	return uint8(v), err
}

// WriteByte writes an 8-bit value.
func (t *Target) WriteByte(ctx Context, value uint8) error {
	return t.WriteSized(ctx, uint64(value), ByteSize)
}

func (t *Target) String() string {
	switch t.Kind {
	case TargetDataRegister:
		return fmt.Sprintf("D%d", t.Index)
	case TargetAddressRegister:
		return fmt.Sprintf("A%d", t.Index)
	case TargetAddress:
		return fmt.Sprintf("(A%d)", t.Index)
	case TargetAddressIncrement:
		return fmt.Sprintf("(A%d)+", t.Index)
	case TargetAddressDecrement:
		return fmt.Sprintf("-(A%d)", t.Index)
	case TargetAddressDisplacement:
		return fmt.Sprintf("$%x(A%d)", int16(t.ExtWord0), t.Index)
	case TargetAddressIndex:
		return fmt.Sprintf("$%x(A%d,%s)", int8(t.ExtWord0), t.Index, indexRegString(t.ExtWord0))
	case TargetPCDisplacement:
		return fmt.Sprintf("$%x(PC)", int16(t.ExtWord0))
	case TargetPCIndex:
		return fmt.Sprintf("$%x(PC,%s)", int8(t.ExtWord0), indexRegString(t.ExtWord0))
	case TargetAbsoluteShort:
		return fmt.Sprintf("($%04x).w", t.ExtWord0)
	case TargetAbsoluteLong:
		return fmt.Sprintf("($%08x).l", uint32(t.ExtWord0)<<16+uint32(t.ExtWord1))
	case TargetImmediate:
		return "#imm"
	}
	return "?"
}

func indexRegString(ext uint16) string {
	file := 'D'
	if ext&(1<<15) != 0 {
		file = 'A'
	}
	size := 'w'
	if ext&(1<<11) != 0 {
		size = 'l'
	}
	return fmt.Sprintf("%c%d.%c", file, (ext>>12)&7, size)
}
