package m68k

import (
	"math/bits"

	"megado/hw/hwio"
)

// Exception vector numbers used by the executor.
const (
	chkVector          = 6
	divideByZeroVector = 5
)

type opClass uint8

const (
	classAdd opClass = iota
	classAnd
	classCmp
	classEor
	classOr
	classSub
)

func (op Op) class() opClass {
	switch op {
	case OpADD, OpADDA, OpADDI, OpADDQ, OpADDX:
		return classAdd
	case OpAND, OpANDI, OpANDIToCCR, OpANDIToSR:
		return classAnd
	case OpCMP, OpCMPA, OpCMPI, OpCMPM:
		return classCmp
	case OpEOR, OpEORI, OpEORIToCCR, OpEORIToSR:
		return classEor
	case OpOR, OpORI, OpORIToCCR, OpORIToSR:
		return classOr
	case OpSUB, OpSUBA, OpSUBI, OpSUBQ, OpSUBX:
		return classSub
	}
	panic("op without a binary class")
}

func (c opClass) apply(lhs, rhs uint64) uint64 {
	switch c {
	case classAdd:
		return lhs + rhs
	case classAnd:
		return lhs & rhs
	case classEor:
		return lhs ^ rhs
	case classOr:
		return lhs | rhs
	case classSub, classCmp:
		return rhs - lhs
	}
	panic("unreachable binary class")
}

func (c opClass) isSubtract() bool {
	return c == classSub || c == classCmp
}

func sizeMask(size Size) uint64 {
	switch size {
	case ByteSize:
		return 0xFF
	case WordSize:
		return 0xFFFF
	case LongSize:
		return 0xFFFFFFFF
	}
	panic("unreachable operand size")
}

// isCarry detects a carry or borrow out of the sized result: arithmetic is
// done in 64 bits, so any set bit above the operand width is the carry.
func isCarry(value uint64, size Size) bool {
	return value&(value^sizeMask(size)) != 0
}

func isZero(value uint64, size Size) bool {
	return value&sizeMask(size) == 0
}

func msb(value uint64, size Size) bool {
	return value>>(size.bits()-1)&1 != 0
}

func isOverflow(lhs, rhs, result uint64, size Size, class opClass) bool {
	lhsMsb := msb(lhs, size) != class.isSubtract()
	rhsMsb := msb(rhs, size)
	resultMsb := msb(result, size)
	return (lhsMsb && rhsMsb && !resultMsb) || (!lhsMsb && !rhsMsb && resultMsb)
}

func pushLong(ctx Context, value uint32) error {
	sp := ctx.Regs.StackPtr()
	*sp -= 4
	return hwio.WriteLong(ctx.Bus, *sp, value)
}

func pushWord(ctx Context, value uint16) error {
	sp := ctx.Regs.StackPtr()
	*sp -= 2
	return hwio.WriteWord(ctx.Bus, *sp, value)
}

func popLong(ctx Context) (uint32, error) {
	sp := ctx.Regs.StackPtr()
	value, err := hwio.ReadLong(ctx.Bus, *sp)
	if err != nil {
		return 0, err
	}
	*sp += 4
	return value, nil
}

func popWord(ctx Context) (uint16, error) {
	sp := ctx.Regs.StackPtr()
	value, err := hwio.ReadWord(ctx.Bus, *sp)
	if err != nil {
		return 0, err
	}
	*sp += 2
	return value, nil
}

// RaiseException builds a TRAP-shaped exception frame: switch to the
// supervisor stack, push PC then SR, then load PC from the vector table.
func RaiseException(ctx Context, vector uint32) error {
	regs := ctx.Regs
	regs.SR.SetSupervisor(true)
	if err := pushLong(ctx, regs.PC); err != nil {
		return err
	}
	if err := pushWord(ctx, uint16(regs.SR)); err != nil {
		return err
	}
	newPC, err := hwio.ReadLong(ctx.Bus, vector*4)
	if err != nil {
		return err
	}
	regs.PC = newPC
	return nil
}

// Execute performs one architectural step for the decoded instruction:
// fetch operands, compute in a 64-bit accumulator, write back, update
// flags, and fire each operand's post-increment exactly once.
func (inst *Instruction) Execute(ctx Context) error {
	regs := ctx.Regs

	// a fresh execution gets fresh side-effect latches
	if inst.HasSrc {
		inst.Src.decremented = false
		inst.Src.SetIncOrDecCount(1)
	}
	if inst.HasDst {
		inst.Dst.decremented = false
		inst.Dst.SetIncOrDecCount(1)
	}

	incCount := uint32(1)
	usedSrcInc, usedDstInc := false, false
	tryIncSrc := func() {
		if inst.HasSrc && !usedSrcInc {
			inst.Src.TryIncrementAddress(ctx, incCount)
		}
		usedSrcInc = true
	}
	tryIncDst := func() {
		if inst.HasDst && !usedDstInc {
			inst.Dst.TryIncrementAddress(ctx, incCount)
		}
		usedDstInc = true
	}

	// displacePC applies a branch displacement. The 16-bit form started
	// two bytes before the current PC, so a negative (or unconditional)
	// word displacement steps back over the displacement word itself.
	displacePC := func(ignoreParsedWordAlways bool) error {
		if inst.Size == ByteSize {
			regs.PC += uint32(int32(int8(inst.Data)))
		} else {
			offset := int32(int16(inst.Data))
			regs.PC += uint32(offset)
			if offset < 0 || ignoreParsedWordAlways {
				regs.PC -= 2
			}
		}
		if regs.PC&1 != 0 {
			return hwio.Errorf(hwio.UnalignedProgramCounter, "program counter set at %04x", regs.PC)
		}
		return nil
	}

	switch inst.Op {
	case OpABCD:
		srcVal, err := inst.Src.ReadByte(ctx)
		if err != nil {
			return err
		}
		dstVal, err := inst.Dst.ReadByte(ctx)
		if err != nil {
			return err
		}
		var extend uint16
		if regs.SR.Extend() {
			extend = 1
		}

		binaryResult := uint16(srcVal) + uint16(dstVal) + extend

		carry := false
		lval := int(srcVal&0x0F) + int(dstVal&0x0F) + int(extend)
		if lval > 9 {
			carry = true
			lval -= 10
		}

		hval := int(srcVal>>4&0x0F) + int(dstVal>>4&0x0F)
		if carry {
			hval++
		}
		carry = false

		if lval >= 16 {
			lval -= 16
			hval++
		}

		if hval > 9 {
			carry = true
			hval -= 10
		}

		result := uint16(hval<<4+lval) & 0xFF

		if err := inst.Dst.WriteByte(ctx, uint8(result)); err != nil {
			return err
		}
		regs.SR.SetNegative(msb(uint64(result), ByteSize))
		regs.SR.SetCarry(carry)
		regs.SR.SetExtend(carry)
		regs.SR.SetOverflow(^binaryResult&result&0x80 != 0)
		if result != 0 {
			regs.SR.SetZero(false)
		}

	case OpSBCD, OpNBCD:
		var byte0, byte1 uint8
		if inst.Op == OpSBCD {
			srcVal, err := inst.Src.ReadByte(ctx)
			if err != nil {
				return err
			}
			dstVal, err := inst.Dst.ReadByte(ctx)
			if err != nil {
				return err
			}
			byte0, byte1 = dstVal, srcVal
		} else {
			dstVal, err := inst.Dst.ReadByte(ctx)
			if err != nil {
				return err
			}
			byte0, byte1 = 0, dstVal
		}

		var extend uint16
		if regs.SR.Extend() {
			extend = 1
		}
		binaryResult := uint16(byte0) - uint16(byte1) - extend

		carry := false
		lval := int(byte0&0x0F) - int(byte1&0x0F) - int(extend)
		if lval < 0 {
			carry = true
			lval += 10
		}

		hval := int(byte0>>4&0x0F) - int(byte1>>4&0x0F)
		if carry {
			hval--
		}
		carry = false

		if hval < 0 {
			carry = true
			hval += 10
		}

		if hval == 0 && lval < 0 {
			carry = true
		}

		result := uint16(hval<<4+lval) & 0xFF

		if err := inst.Dst.WriteByte(ctx, uint8(result)); err != nil {
			return err
		}
		regs.SR.SetNegative(msb(uint64(result), ByteSize))
		regs.SR.SetCarry(carry)
		regs.SR.SetExtend(carry)
		regs.SR.SetOverflow(binaryResult&^result&0x80 != 0)
		if result != 0 {
			regs.SR.SetZero(false)
		}

	case OpADD, OpADDI, OpAND, OpANDI, OpCMP, OpCMPI, OpCMPM,
		OpEOR, OpEORI, OpOR, OpORI, OpSUB, OpSUBI:
		srcVal, err := inst.Src.ReadValue(ctx, inst.Size)
		if err != nil {
			return err
		}
		tryIncSrc()
		dstVal, err := inst.Dst.ReadValue(ctx, inst.Size)
		if err != nil {
			return err
		}

		class := inst.Op.class()
		result := class.apply(srcVal, dstVal)
		if class != classCmp {
			if err := inst.Dst.WriteSized(ctx, result, inst.Size); err != nil {
				return err
			}
		}

		carry := isCarry(result, inst.Size)
		if class == classAdd || class == classSub {
			regs.SR.SetExtend(carry)
		}
		regs.SR.SetNegative(msb(result, inst.Size))
		regs.SR.SetZero(isZero(result, inst.Size))
		if class == classAdd || class == classSub || class == classCmp {
			regs.SR.SetOverflow(isOverflow(srcVal, dstVal, result, inst.Size, class))
			regs.SR.SetCarry(carry)
		} else {
			regs.SR.SetOverflow(false)
			regs.SR.SetCarry(false)
		}

	case OpADDA, OpCMPA, OpSUBA:
		class := inst.Op.class()

		var src uint64
		if inst.Size == WordSize {
			srcVal, err := inst.Src.ReadWord(ctx)
			if err != nil {
				return err
			}
			src = uint64(int64(int16(srcVal)))
		} else {
			srcVal, err := inst.Src.ReadLong(ctx)
			if err != nil {
				return err
			}
			src = uint64(srcVal)
		}
		dstVal, err := inst.Dst.ReadLong(ctx)
		if err != nil {
			return err
		}
		result := class.apply(src, uint64(dstVal))

		if class == classCmp {
			regs.SR.SetNegative(msb(result, LongSize))
			regs.SR.SetZero(isZero(result, LongSize))
			regs.SR.SetOverflow(isOverflow(src, uint64(dstVal), result, LongSize, class))
			regs.SR.SetCarry(isCarry(result^src, LongSize))
		} else {
			if err := inst.Dst.WriteSized(ctx, result, LongSize); err != nil {
				return err
			}
		}

	case OpADDQ, OpSUBQ:
		class := inst.Op.class()
		srcVal := uint64(inst.Data)
		if srcVal == 0 {
			srcVal = 8
		}
		dstVal, err := inst.Dst.ReadValue(ctx, inst.Size)
		if err != nil {
			return err
		}
		result := class.apply(srcVal, dstVal)
		if err := inst.Dst.WriteSized(ctx, result, inst.Size); err != nil {
			return err
		}

		if inst.Dst.Kind != TargetAddressRegister {
			carry := isCarry(result, inst.Size)
			regs.SR.SetNegative(msb(result, inst.Size))
			regs.SR.SetCarry(carry)
			regs.SR.SetExtend(carry)
			regs.SR.SetOverflow(isOverflow(srcVal, dstVal, result, inst.Size, class))
			regs.SR.SetZero(isZero(result, inst.Size))
		}

	case OpADDX, OpSUBX:
		class := inst.Op.class()
		srcVal, err := inst.Src.ReadValue(ctx, inst.Size)
		if err != nil {
			return err
		}
		dstVal, err := inst.Dst.ReadValue(ctx, inst.Size)
		if err != nil {
			return err
		}
		var extend uint64
		if regs.SR.Extend() {
			extend = 1
		}
		result := class.apply(srcVal+extend, dstVal)
		if err := inst.Dst.WriteSized(ctx, result, inst.Size); err != nil {
			return err
		}

		carry := isCarry(result, inst.Size)
		regs.SR.SetNegative(msb(result, inst.Size))
		regs.SR.SetCarry(carry)
		regs.SR.SetExtend(carry)
		regs.SR.SetOverflow(isOverflow(srcVal, dstVal, result, inst.Size, class))
		if !isZero(result, inst.Size) {
			regs.SR.SetZero(false)
		}

	case OpANDIToCCR, OpEORIToCCR, OpORIToCCR:
		srcVal, err := inst.Src.ReadByte(ctx)
		if err != nil {
			return err
		}
		regs.SR.SetCCR(uint8(inst.Op.class().apply(uint64(srcVal), uint64(regs.SR.CCR()))))

	case OpMOVEToCCR:
		srcVal, err := inst.Src.ReadWord(ctx)
		if err != nil {
			return err
		}
		regs.SR.SetCCR(uint8(srcVal))

	case OpANDIToSR, OpEORIToSR, OpORIToSR:
		srcVal, err := inst.Src.ReadWord(ctx)
		if err != nil {
			return err
		}
		masked := uint64(srcVal) & uint64(srWriteMask)
		regs.SR = SR(inst.Op.class().apply(masked, uint64(regs.SR)))

	case OpMOVEToSR:
		srcVal, err := inst.Src.ReadWord(ctx)
		if err != nil {
			return err
		}
		tryIncSrc()
		regs.SR.SetWord(srcVal)

	case OpMOVEFromSR:
		if err := inst.Dst.WriteWord(ctx, uint16(regs.SR)); err != nil {
			return err
		}

	case OpMOVEToUSP:
		srcVal, err := inst.Src.ReadLong(ctx)
		if err != nil {
			return err
		}
		regs.USP = srcVal

	case OpMOVEFromUSP:
		if err := inst.Dst.WriteLong(ctx, regs.USP); err != nil {
			return err
		}

	case OpASL, OpASR, OpLSL, OpLSR, OpROL, OpROR, OpROXL, OpROXR:
		isArithmetic := inst.Op == OpASL || inst.Op == OpASR
		isRotate := inst.Op == OpROL || inst.Op == OpROR
		isExtendRotate := inst.Op == OpROXL || inst.Op == OpROXR
		isLeft := inst.Op == OpASL || inst.Op == OpLSL || inst.Op == OpROL || inst.Op == OpROXL

		dstVal, err := inst.Dst.ReadValue(ctx, inst.Size)
		if err != nil {
			return err
		}

		var rotation uint8
		if inst.HasSrc {
			srcVal, err := inst.Src.ReadValue(ctx, inst.Size)
			if err != nil {
				return err
			}
			rotation = uint8(srcVal % 64)
		} else {
			rotation = uint8(inst.Data)
			if rotation == 0 {
				rotation = 8
			}
		}

		result := dstVal
		hasOverflow := false
		curMsb := msb(result, inst.Size)
		var lastBitShifted bool
		for i := 0; i < int(rotation); i++ {
			if isLeft {
				lastBitShifted = msb(result, inst.Size)
				result <<= 1
				if isRotate {
					if lastBitShifted {
						result |= 1
					}
				} else if isExtendRotate {
					if regs.SR.Extend() {
						result |= 1
					}
					regs.SR.SetExtend(lastBitShifted)
					regs.SR.SetCarry(lastBitShifted)
				}
			} else {
				if i >= int(inst.Size.bits()) && isArithmetic {
					lastBitShifted = false
				} else {
					lastBitShifted = result&1 != 0
				}
				if isArithmetic {
					// the sign bit shifts in from itself
					result = result>>1 | result&(1<<(inst.Size.bits()-1))
				} else {
					result >>= 1
					if isRotate && lastBitShifted {
						result |= 1 << (inst.Size.bits() - 1)
					}
					if isExtendRotate {
						if regs.SR.Extend() {
							result |= 1 << (inst.Size.bits() - 1)
						}
						regs.SR.SetExtend(lastBitShifted)
					}
				}
			}
			newMsb := msb(result, inst.Size)
			if curMsb != newMsb {
				hasOverflow = true
			}
			curMsb = newMsb
		}

		if err := inst.Dst.WriteSized(ctx, result, inst.Size); err != nil {
			return err
		}

		regs.SR.SetNegative(msb(result, inst.Size))
		regs.SR.SetZero(isZero(result, inst.Size))
		if isArithmetic {
			regs.SR.SetOverflow(hasOverflow)
		} else {
			regs.SR.SetOverflow(false)
		}
		if rotation == 0 {
			regs.SR.SetCarry(false)
			if isExtendRotate {
				regs.SR.SetCarry(regs.SR.Extend())
			}
		} else {
			if !isRotate && !isExtendRotate {
				regs.SR.SetExtend(lastBitShifted)
			}
			regs.SR.SetCarry(lastBitShifted)
		}

	case OpBcc:
		if inst.Cond.Holds(regs.SR) {
			if err := displacePC(true); err != nil {
				return err
			}
		}

	case OpDBcc:
		if !inst.Cond.Holds(regs.SR) {
			dstVal, err := inst.Dst.ReadWord(ctx)
			if err != nil {
				return err
			}
			counter := int16(dstVal) - 1
			if err := inst.Dst.WriteWord(ctx, uint16(counter)); err != nil {
				return err
			}
			if counter != -1 {
				// the displacement base is the word after the opcode
				if int16(inst.Data) >= 0 {
					regs.PC -= 2
				}
				if err := displacePC(false); err != nil {
					return err
				}
			}
		}

	case OpScc:
		val := uint8(0x00)
		if inst.Cond.Holds(regs.SR) {
			val = 0xFF
		}
		if err := inst.Dst.WriteByte(ctx, val); err != nil {
			return err
		}

	case OpBSR:
		if err := pushLong(ctx, regs.PC); err != nil {
			return err
		}
		if err := displacePC(true); err != nil {
			return err
		}

	case OpJMP, OpJSR:
		oldPC := regs.PC
		regs.PC = inst.Dst.EffectiveAddress(ctx)
		if inst.Op == OpJSR {
			if err := pushLong(ctx, oldPC); err != nil {
				return err
			}
		}
		if regs.PC&1 != 0 {
			return hwio.Errorf(hwio.UnalignedProgramCounter, "program counter set at %04x", regs.PC)
		}

	case OpLEA:
		if err := inst.Dst.WriteLong(ctx, inst.Src.EffectiveAddress(ctx)); err != nil {
			return err
		}

	case OpPEA:
		if err := pushLong(ctx, inst.Src.EffectiveAddress(ctx)); err != nil {
			return err
		}

	case OpBTST, OpBCHG, OpBCLR, OpBSET:
		srcVal, err := inst.Src.ReadByte(ctx)
		if err != nil {
			return err
		}
		bitNum := uint32(srcVal)
		if inst.Dst.Kind == TargetDataRegister {
			bitNum %= 32
		} else {
			bitNum %= 8
		}

		var val uint64
		if inst.Dst.Kind == TargetDataRegister {
			dstVal, err := inst.Dst.ReadLong(ctx)
			if err != nil {
				return err
			}
			val = uint64(dstVal)
		} else {
			dstVal, err := inst.Dst.ReadByte(ctx)
			if err != nil {
				return err
			}
			val = uint64(dstVal)
		}

		mask := uint64(1) << bitNum
		newVal := val
		switch inst.Op {
		case OpBCHG:
			newVal ^= mask
		case OpBCLR:
			newVal &= newVal ^ mask
		case OpBSET:
			newVal |= mask
		}

		regs.SR.SetZero(val&mask == 0)
		if newVal != val {
			if inst.Dst.Kind == TargetDataRegister {
				if err := inst.Dst.WriteLong(ctx, uint32(newVal)); err != nil {
					return err
				}
			} else {
				if err := inst.Dst.WriteByte(ctx, uint8(newVal)); err != nil {
					return err
				}
			}
		}

	case OpCLR, OpNEG, OpNEGX, OpNOT:
		dstVal, err := inst.Dst.ReadValue(ctx, inst.Size)
		if err != nil {
			return err
		}
		result := dstVal

		hasOverflow := false

		switch inst.Op {
		case OpCLR:
			result = 0
		case OpNOT:
			result = ^result
		case OpNEG, OpNEGX:
			result = ^result
			if inst.Op != OpNEGX || !regs.SR.Extend() {
				mask0 := uint64(1)<<(inst.Size.bits()-1) - 1
				mask1 := uint64(1)<<inst.Size.bits() - 1
				if result&mask1 == mask0 {
					hasOverflow = true
				}
				result++
			}
		}

		if err := inst.Dst.WriteSized(ctx, result, inst.Size); err != nil {
			return err
		}

		regs.SR.SetNegative(msb(result, inst.Size))
		curIsZero := isZero(result, inst.Size)
		if inst.Op != OpNEGX || !curIsZero {
			regs.SR.SetZero(curIsZero)
		}
		if inst.Op == OpNEG || inst.Op == OpNEGX {
			regs.SR.SetOverflow(hasOverflow)
			regs.SR.SetCarry(isCarry(result, inst.Size))
			regs.SR.SetExtend(regs.SR.Carry())
		} else {
			regs.SR.SetOverflow(false)
			regs.SR.SetCarry(false)
		}

	case OpMOVE:
		// the source resolves against the PC it was decoded at, so the
		// destination's PC-relative base stays correct
		tmp := regs.PC
		regs.PC = inst.Data
		srcVal, err := inst.Src.ReadValue(ctx, inst.Size)
		if err != nil {
			return err
		}
		tryIncSrc()
		regs.PC = tmp

		if err := inst.Dst.WriteSized(ctx, srcVal, inst.Size); err != nil {
			return err
		}

		regs.SR.SetNegative(msb(srcVal, inst.Size))
		regs.SR.SetZero(isZero(srcVal, inst.Size))
		regs.SR.SetOverflow(false)
		regs.SR.SetCarry(false)

	case OpMOVEP:
		if err := inst.executeMovep(ctx); err != nil {
			return err
		}

	case OpMOVEA:
		tmp := regs.PC
		regs.PC = inst.Data

		var src uint32
		if inst.Size == WordSize {
			srcVal, err := inst.Src.ReadWord(ctx)
			if err != nil {
				return err
			}
			src = uint32(int32(int16(srcVal)))
		} else {
			srcVal, err := inst.Src.ReadLong(ctx)
			if err != nil {
				return err
			}
			src = srcVal
		}

		tryIncSrc()
		regs.PC = tmp

		if err := inst.Dst.WriteLong(ctx, src); err != nil {
			return err
		}

	case OpMOVEM:
		if err := inst.executeMovem(ctx, &incCount); err != nil {
			return err
		}

	case OpMOVEQ:
		src := uint32(int32(int8(inst.Data)))
		if err := inst.Dst.WriteLong(ctx, src); err != nil {
			return err
		}

		regs.SR.SetNegative(msb(uint64(src), LongSize))
		regs.SR.SetZero(isZero(uint64(src), LongSize))
		regs.SR.SetOverflow(false)
		regs.SR.SetCarry(false)

	case OpSWAP:
		dstVal, err := inst.Dst.ReadLong(ctx)
		if err != nil {
			return err
		}
		val := dstVal>>16 | dstVal<<16
		if err := inst.Dst.WriteLong(ctx, val); err != nil {
			return err
		}

		regs.SR.SetNegative(msb(uint64(val), LongSize))
		regs.SR.SetZero(isZero(uint64(val), LongSize))
		regs.SR.SetOverflow(false)
		regs.SR.SetCarry(false)

	case OpTAS:
		dstVal, err := inst.Dst.ReadByte(ctx)
		if err != nil {
			return err
		}
		if err := inst.Dst.WriteByte(ctx, dstVal|1<<7); err != nil {
			return err
		}

		regs.SR.SetNegative(msb(uint64(dstVal), ByteSize))
		regs.SR.SetZero(isZero(uint64(dstVal), ByteSize))
		regs.SR.SetOverflow(false)
		regs.SR.SetCarry(false)

	case OpEXG:
		srcVal, err := inst.Src.ReadLong(ctx)
		if err != nil {
			return err
		}
		dstVal, err := inst.Dst.ReadLong(ctx)
		if err != nil {
			return err
		}
		if err := inst.Dst.WriteLong(ctx, srcVal); err != nil {
			return err
		}
		if err := inst.Src.WriteLong(ctx, dstVal); err != nil {
			return err
		}

	case OpEXT:
		var val uint32
		if inst.Size == WordSize {
			dstVal, err := inst.Dst.ReadWord(ctx)
			if err != nil {
				return err
			}
			val = uint32(uint16(int16(int8(dstVal))))
			if err := inst.Dst.WriteWord(ctx, uint16(val)); err != nil {
				return err
			}
		} else {
			dstVal, err := inst.Dst.ReadLong(ctx)
			if err != nil {
				return err
			}
			val = uint32(int32(int16(dstVal)))
			if err := inst.Dst.WriteLong(ctx, val); err != nil {
				return err
			}
		}
		regs.SR.SetNegative(msb(uint64(val), inst.Size))
		regs.SR.SetZero(isZero(uint64(val), inst.Size))
		regs.SR.SetOverflow(false)
		regs.SR.SetCarry(false)

	case OpLINK:
		dstVal, err := inst.Dst.ReadLong(ctx)
		if err != nil {
			return err
		}
		sp := regs.StackPtr()
		if inst.Dst.Index == 7 {
			// LINK A7 pushes the already-decremented stack pointer
			if err := pushLong(ctx, dstVal-4); err != nil {
				return err
			}
		} else {
			if err := pushLong(ctx, dstVal); err != nil {
				return err
			}
		}

		if err := inst.Dst.WriteLong(ctx, *sp); err != nil {
			return err
		}
		*sp += uint32(int32(int16(inst.Data)))

	case OpUNLK:
		dstVal, err := inst.Dst.ReadLong(ctx)
		if err != nil {
			return err
		}
		*regs.StackPtr() = dstVal
		value, err := popLong(ctx)
		if err != nil {
			return err
		}
		if err := inst.Dst.WriteLong(ctx, value); err != nil {
			return err
		}

	case OpTRAP, OpTRAPV:
		if inst.Op == OpTRAPV && !regs.SR.Overflow() {
			break
		}
		if err := RaiseException(ctx, inst.Data); err != nil {
			return err
		}

	case OpRTE, OpRTR, OpRTS:
		var newSR uint16
		if inst.Op != OpRTS {
			var err error
			newSR, err = popWord(ctx)
			if err != nil {
				return err
			}
		}
		newPC, err := popLong(ctx)
		if err != nil {
			return err
		}
		regs.PC = newPC

		switch inst.Op {
		case OpRTE:
			regs.SR.SetWord(newSR)
		case OpRTR:
			regs.SR.SetCCR(uint8(newSR))
		}

		if regs.PC&1 != 0 {
			return hwio.Errorf(hwio.UnalignedProgramCounter, "program counter set at %04x", regs.PC)
		}

	case OpTST:
		srcVal, err := inst.Src.ReadValue(ctx, inst.Size)
		if err != nil {
			return err
		}
		regs.SR.SetNegative(msb(srcVal, inst.Size))
		regs.SR.SetZero(isZero(srcVal, inst.Size))
		regs.SR.SetOverflow(false)
		regs.SR.SetCarry(false)

	case OpCHK:
		srcVal, err := inst.Src.ReadWord(ctx)
		if err != nil {
			return err
		}
		dstVal, err := inst.Dst.ReadWord(ctx)
		if err != nil {
			return err
		}
		signedSrc := int16(srcVal)
		signedDst := int16(dstVal)
		if signedDst < 0 || signedDst > signedSrc {
			if err := RaiseException(ctx, chkVector); err != nil {
				return err
			}
			regs.SR.SetNegative(signedDst < 0)
		}
		regs.SR.SetZero(false)
		regs.SR.SetOverflow(false)
		regs.SR.SetCarry(false)

	case OpMULU, OpMULS:
		srcVal, err := inst.Src.ReadWord(ctx)
		if err != nil {
			return err
		}
		dstVal, err := inst.Dst.ReadWord(ctx)
		if err != nil {
			return err
		}

		var result uint32
		if inst.Op == OpMULU {
			result = uint32(srcVal) * uint32(dstVal)
		} else {
			result = uint32(int32(int16(srcVal)) * int32(int16(dstVal)))
		}

		if err := inst.Dst.WriteLong(ctx, result); err != nil {
			return err
		}

		regs.SR.SetNegative(msb(uint64(result), LongSize))
		regs.SR.SetCarry(false)
		regs.SR.SetOverflow(false)
		regs.SR.SetZero(result == 0)

	case OpDIVU, OpDIVS:
		srcVal, err := inst.Src.ReadWord(ctx)
		if err != nil {
			return err
		}
		dstVal, err := inst.Dst.ReadLong(ctx)
		if err != nil {
			return err
		}

		if srcVal == 0 {
			if err := RaiseException(ctx, divideByZeroVector); err != nil {
				return err
			}
			regs.SR.SetNegative(false)
			regs.SR.SetZero(false)
			regs.SR.SetOverflow(false)
			regs.SR.SetCarry(false)
			break
		}

		var quotient, remainder uint32
		overflow := false
		if inst.Op == OpDIVU {
			quotient = dstVal / uint32(srcVal)
			remainder = dstVal % uint32(srcVal)
			overflow = quotient > 0xFFFF
		} else {
			signedDst := int64(int32(dstVal))
			signedSrc := int64(int16(srcVal))
			signedQuotient := signedDst / signedSrc
			overflow = signedQuotient != int64(int16(signedQuotient))

			quotient = uint32(signedQuotient)
			remainder = uint32(signedDst % signedSrc)
		}

		if overflow {
			regs.SR.SetOverflow(true)
		} else {
			result := (remainder&0xFFFF)<<16 | quotient&0xFFFF
			if err := inst.Dst.WriteLong(ctx, result); err != nil {
				return err
			}
			regs.SR.SetOverflow(false)
			regs.SR.SetNegative(msb(uint64(quotient), WordSize))
			regs.SR.SetZero(quotient == 0)
		}
		regs.SR.SetCarry(false)

	case OpNOP, OpRESET:
		// nothing to do
	}

	tryIncSrc()
	tryIncDst()

	return nil
}

// executeMovem transfers the registers selected by the mask in Data.
// Stores through -(An) walk the mask in reverse; loads through (An)+ skip
// overwriting the base register itself.
func (inst *Instruction) executeMovem(ctx Context, incCount *uint32) error {
	regs := ctx.Regs
	mask := uint16(inst.Data)

	hasBit := func(i int) bool { return mask&(1<<i) != 0 }

	getReg := func(i int) *uint32 {
		switch {
		case i <= 7:
			return &regs.D[i]
		case i <= 14:
			return &regs.A[i-8]
		default:
			return regs.StackPtr()
		}
	}

	size := inst.Size

	if inst.HasSrc {
		regCount := bits.OnesCount16(mask)
		*incCount = uint32(regCount)
		var data [16 * 4]byte
		p := data[:regCount*int(size)]
		if err := inst.Src.Read(ctx, p); err != nil {
			return err
		}

		pos := 0
		for i := 0; i < 16; i++ {
			if !hasBit(i) {
				continue
			}
			// don't clobber the post-increment base register
			if i < 8 || inst.Src.Kind != TargetAddressIncrement || i-8 != int(inst.Src.Index) {
				if size == WordSize {
					*getReg(i) = uint32(int32(int16(uint16(p[pos])<<8 | uint16(p[pos+1]))))
				} else {
					*getReg(i) = uint32(p[pos])<<24 | uint32(p[pos+1])<<16 | uint32(p[pos+2])<<8 | uint32(p[pos+3])
				}
			}
			pos += int(size)
		}
		return nil
	}

	var data [16 * 4]byte
	n := 0
	for i := 0; i < 16; i++ {
		has := hasBit(i)
		if inst.Dst.Kind == TargetAddressDecrement {
			has = hasBit(15 - i)
		}
		if !has {
			continue
		}
		reg := *getReg(i)
		if size == LongSize {
			data[n] = uint8(reg >> 24)
			data[n+1] = uint8(reg >> 16)
			n += 2
		}
		data[n] = uint8(reg >> 8)
		data[n+1] = uint8(reg)
		n += 2
	}
	inst.Dst.SetIncOrDecCount(uint32(bits.OnesCount16(mask)))
	return inst.Dst.Write(ctx, data[:n])
}

// executeMovep laces a data register with every other byte of memory,
// starting at d16(An). The address parity selects which byte lane.
func (inst *Instruction) executeMovep(ctx Context) error {
	bus := ctx.Bus

	if inst.Dst.Kind == TargetDataRegister {
		addr := inst.Src.EffectiveAddress(ctx)
		isOdd := addr&1 != 0
		if isOdd {
			addr--
		}
		nwords := 2
		if inst.Size == LongSize {
			nwords = 4
		}
		var words [4]uint16
		for i := 0; i < nwords; i++ {
			w, err := hwio.ReadWord(bus, addr+uint32(2*i))
			if err != nil {
				return err
			}
			words[i] = w
		}
		var result uint32
		for i := 0; i < nwords; i++ {
			var b uint8
			if isOdd {
				b = uint8(words[i])
			} else {
				b = uint8(words[i] >> 8)
			}
			result = result<<8 | uint32(b)
		}
		if inst.Size == WordSize {
			return inst.Dst.WriteWord(ctx, uint16(result))
		}
		return inst.Dst.WriteLong(ctx, result)
	}

	addr := inst.Dst.EffectiveAddress(ctx)
	isOdd := addr&1 != 0
	if isOdd {
		addr--
	}
	var srcBytes [4]uint8
	var nbytes int
	if inst.Size == WordSize {
		reg, err := inst.Src.ReadWord(ctx)
		if err != nil {
			return err
		}
		srcBytes[0] = uint8(reg >> 8)
		srcBytes[1] = uint8(reg)
		nbytes = 2
	} else {
		reg, err := inst.Src.ReadLong(ctx)
		if err != nil {
			return err
		}
		srcBytes[0] = uint8(reg >> 24)
		srcBytes[1] = uint8(reg >> 16)
		srcBytes[2] = uint8(reg >> 8)
		srcBytes[3] = uint8(reg)
		nbytes = 4
	}
	for i := 0; i < nbytes; i++ {
		word := uint16(srcBytes[i])
		if !isOdd {
			word <<= 8
		}
		if err := hwio.WriteWord(bus, addr+uint32(2*i), word); err != nil {
			return err
		}
	}
	return nil
}
