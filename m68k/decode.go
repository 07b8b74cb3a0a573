package m68k

import (
	"megado/hw/hwio"
)

// pattern is a fixed-width opcode matcher compiled from a string such as
// "0100 ...1 11.. ....", where 0/1 are literal bits and '.' is a wildcard.
type pattern struct {
	mask, val uint16
}

func pat(s string) pattern {
	var p pattern
	for _, c := range s {
		switch c {
		case '0':
			p.mask = p.mask<<1 | 1
			p.val <<= 1
		case '1':
			p.mask = p.mask<<1 | 1
			p.val = p.val<<1 | 1
		case '.':
			p.mask <<= 1
			p.val <<= 1
		}
	}
	return p
}

func (p pattern) match(w uint16) bool {
	return w&p.mask == p.val
}

func bitsRange(w uint16, begin, n uint) uint16 {
	return (w >> begin) & (1<<n - 1)
}

func bitAt(w uint16, bit uint) bool {
	return bitsRange(w, bit, 1) != 0
}

var (
	patReset = pat("0100 1110 0111 0000")
	patNop   = pat("0100 1110 0111 0001")
	patDbcc  = pat("0101 .... 1100 1...")
	patScc   = pat("0101 .... 11.. ....")
	patQuick = pat("0101 .... .... ....")
	patBcd   = pat("1.00 ...1 0000 ....")
	patOpX   = pat("1.01 ...1 ..00 ....")
	patBra   = pat("0110 .... .... ....")
	patJmp   = pat("0100 1110 1... ....")
	patLea   = pat("0100 ...1 11.. ....")
	patCmpm  = pat("1011 ...1 ..00 1...")
	patSwap  = pat("0100 1000 0100 0...")
	patPea   = pat("0100 1000 01.. ....")
	patTas   = pat("0100 1010 11.. ....")
	patExg   = pat("1100 ...1 ..00 ....")
	patExt   = pat("0100 1000 1.00 0...")
	patLink  = pat("0100 1110 0101 0...")
	patUnlk  = pat("0100 1110 0101 1...")
	patTrap  = pat("0100 1110 0100 ....")
	patTrapv = pat("0100 1110 0111 0110")
	patRte   = pat("0100 1110 0111 0011")
	patRts   = pat("0100 1110 0111 0101")
	patRtr   = pat("0100 1110 0111 0111")
	patTst   = pat("0100 1010 .... ....")
	patChk   = pat("0100 ...1 10.. ....")
	patNbcd  = pat("0100 1000 00.. ....")
	patMul   = pat("1100 .... 11.. ....")
	patDiv   = pat("1000 .... 11.. ....")

	patToSR     = pat("0000 ...0 0.11 1100")
	patBitReg   = [4]pattern{pat("0000 ...1 00.. ...."), pat("0000 ...1 01.. ...."), pat("0000 ...1 10.. ...."), pat("0000 ...1 11.. ....")}
	patBitImm   = [4]pattern{pat("0000 1000 00.. ...."), pat("0000 1000 01.. ...."), pat("0000 1000 10.. ...."), pat("0000 1000 11.. ....")}
	patUnary    = [4]pattern{pat("0100 0000 .... ...."), pat("0100 0010 .... ...."), pat("0100 0100 .... ...."), pat("0100 0110 .... ....")}
	patShiftMem = pat("1110 0... 11.. ....")
	patShiftReg = pat("1110 .... .... ....")
	patBinImm   = pat("0000 ...0 .... ....")
	patBinary   = pat("1... .... .... ....")
	patBinAddr  = pat("1..1 .... 11.. ....")

	patMove        = pat("00.. .... .... ....")
	patMovep       = pat("0000 ...1 ..00 1...")
	patMovem       = pat("0100 1.00 1... ....")
	patMoveq       = pat("0111 ...0 .... ....")
	patMoveToCcrSr = pat("0100 01.0 11.. ....")
	patMoveFromSr  = pat("0100 0000 11.. ....")
	patMoveToUsp   = pat("0100 1110 0110 0...")
	patMoveFromUsp = pat("0100 1110 0110 1...")
)

const trapVectorOffset = 32
const trapvVector = 7

type decoder struct {
	ctx  Context
	w    uint16 // first opcode word
	inst Instruction
}

// Decode reads the instruction at the current PC, advancing PC past every
// consumed word (opcode, extension words, inline immediates).
func Decode(ctx Context) (Instruction, error) {
	d := decoder{ctx: ctx}

	w, err := d.readWord()
	if err != nil {
		return Instruction{}, err
	}
	d.w = w

	if err := d.decode(); err != nil {
		return Instruction{}, err
	}
	return d.inst, nil
}

func (d *decoder) readWord() (uint16, error) {
	w, err := hwio.ReadWord(d.ctx.Bus, d.ctx.Regs.PC)
	if err != nil {
		return 0, err
	}
	d.ctx.Regs.PC += 2
	return w, nil
}

// size0 decodes the common size field at bits 6-7.
func (d *decoder) size0() Size {
	switch bitsRange(d.w, 6, 2) {
	case 0:
		return ByteSize
	case 1:
		return WordSize
	case 2:
		return LongSize
	}
	panic("unreachable opcode size")
}

// immediate builds an Immediate operand pointing into the instruction
// stream and skips PC past it. Byte immediates occupy the low byte of a
// word.
func (d *decoder) immediate(size Size) Target {
	pc := &d.ctx.Regs.PC
	t := Target{Kind: TargetImmediate, Address: *pc}
	if size == ByteSize {
		t.Address = *pc + 1
	}
	if size == LongSize {
		*pc += 4
	} else {
		*pc += 2
	}
	return t
}

// parseTarget decodes an effective-address field: a 3-bit mode and a 3-bit
// register number at the given positions in the opcode word.
func (d *decoder) parseTarget(size Size, modeBegin, indexBegin uint) (Target, error) {
	mode := bitsRange(d.w, modeBegin, 3)
	xn := uint8(bitsRange(d.w, indexBegin, 3))

	switch mode {
	case 0:
		return Target{Kind: TargetDataRegister, Index: xn}, nil
	case 1:
		return Target{Kind: TargetAddressRegister, Index: xn}, nil
	case 2:
		return Target{Kind: TargetAddress, Index: xn}, nil
	case 3:
		return Target{Kind: TargetAddressIncrement, Index: xn, Size: uint8(size)}, nil
	case 4:
		return Target{Kind: TargetAddressDecrement, Index: xn, Size: uint8(size)}, nil
	case 5:
		ext, err := d.readWord()
		if err != nil {
			return Target{}, err
		}
		return Target{Kind: TargetAddressDisplacement, Index: xn, ExtWord0: ext}, nil
	case 6:
		ext, err := d.readWord()
		if err != nil {
			return Target{}, err
		}
		return Target{Kind: TargetAddressIndex, Index: xn, ExtWord0: ext}, nil
	case 7:
		switch xn {
		case 0:
			ext, err := d.readWord()
			if err != nil {
				return Target{}, err
			}
			return Target{Kind: TargetAbsoluteShort, ExtWord0: ext}, nil
		case 1:
			ext0, err := d.readWord()
			if err != nil {
				return Target{}, err
			}
			ext1, err := d.readWord()
			if err != nil {
				return Target{}, err
			}
			return Target{Kind: TargetAbsoluteLong, ExtWord0: ext0, ExtWord1: ext1}, nil
		case 2:
			ext, err := d.readWord()
			if err != nil {
				return Target{}, err
			}
			return Target{Kind: TargetPCDisplacement, ExtWord0: ext}, nil
		case 3:
			ext, err := d.readWord()
			if err != nil {
				return Target{}, err
			}
			return Target{Kind: TargetPCIndex, ExtWord0: ext}, nil
		case 4:
			return d.immediate(size), nil
		}
		return Target{}, hwio.Errorf(hwio.UnknownAddressingMode, "unknown addressing mode in word %04x", d.w)
	}
	panic("unreachable addressing mode")
}

func (d *decoder) parseDst(size Size) (Target, error) {
	return d.parseTarget(size, 3, 0)
}

func (d *decoder) decode() error {
	w := d.w
	inst := &d.inst

	switch {
	case patReset.match(w):
		inst.Op = OpRESET

	case patNop.match(w):
		inst.Op = OpNOP

	case patDbcc.match(w):
		ext, err := d.readWord()
		if err != nil {
			return err
		}
		inst.Op = OpDBcc
		inst.Cond = Cond(bitsRange(w, 8, 4))
		inst.setDst(Target{Kind: TargetDataRegister, Index: uint8(bitsRange(w, 0, 3)), Size: uint8(WordSize)})
		inst.Data = uint32(ext)
		inst.Size = WordSize

	case patScc.match(w):
		dst, err := d.parseDst(ByteSize)
		if err != nil {
			return err
		}
		inst.Op = OpScc
		inst.Cond = Cond(bitsRange(w, 8, 4))
		inst.setDst(dst)

	case patQuick.match(w):
		size := d.size0()
		dst, err := d.parseDst(size)
		if err != nil {
			return err
		}
		if bitAt(w, 8) {
			inst.Op = OpSUBQ
		} else {
			inst.Op = OpADDQ
		}
		inst.Data = uint32(bitsRange(w, 9, 3))
		inst.setDst(dst)
		inst.Size = size

	case patBcd.match(w):
		kind := TargetDataRegister
		if bitAt(w, 3) {
			kind = TargetAddressDecrement
		}
		if bitAt(w, 14) {
			inst.Op = OpABCD
		} else {
			inst.Op = OpSBCD
		}
		inst.setSrc(Target{Kind: kind, Index: uint8(bitsRange(w, 0, 3)), Size: 1})
		inst.setDst(Target{Kind: kind, Index: uint8(bitsRange(w, 9, 3)), Size: 1})

	case patOpX.match(w) && bitsRange(w, 6, 2) != 3:
		size := d.size0()
		kind := TargetDataRegister
		if bitAt(w, 3) {
			kind = TargetAddressDecrement
		}
		if bitAt(w, 14) {
			inst.Op = OpADDX
		} else {
			inst.Op = OpSUBX
		}
		inst.setSrc(Target{Kind: kind, Index: uint8(bitsRange(w, 0, 3)), Size: uint8(size)})
		inst.setDst(Target{Kind: kind, Index: uint8(bitsRange(w, 9, 3)), Size: uint8(size)})
		inst.Size = size

	case patBra.match(w):
		cond := Cond(bitsRange(w, 8, 4))
		displacement := uint32(bitsRange(w, 0, 8))
		size := ByteSize
		if displacement == 0 {
			ext, err := d.readWord()
			if err != nil {
				return err
			}
			displacement = uint32(ext)
			size = WordSize
		}
		// the False condition encodes BSR
		if cond == CondF {
			inst.Op = OpBSR
		} else {
			inst.Op = OpBcc
			inst.Cond = cond
		}
		inst.Data = displacement
		inst.Size = size

	case patJmp.match(w):
		dst, err := d.parseDst(LongSize)
		if err != nil {
			return err
		}
		if bitAt(w, 6) {
			inst.Op = OpJMP
		} else {
			inst.Op = OpJSR
		}
		inst.setDst(dst)

	case patLea.match(w):
		src, err := d.parseDst(LongSize)
		if err != nil {
			return err
		}
		inst.Op = OpLEA
		inst.setSrc(src)
		inst.setDst(Target{Kind: TargetAddressRegister, Index: uint8(bitsRange(w, 9, 3))})

	case patCmpm.match(w) && bitsRange(w, 6, 2) != 3:
		size := d.size0()
		inst.Op = OpCMPM
		inst.setSrc(Target{Kind: TargetAddressIncrement, Index: uint8(bitsRange(w, 0, 3)), Size: uint8(size)})
		inst.setDst(Target{Kind: TargetAddressIncrement, Index: uint8(bitsRange(w, 9, 3)), Size: uint8(size)})
		inst.Size = size

	case patSwap.match(w):
		inst.Op = OpSWAP
		inst.setDst(Target{Kind: TargetDataRegister, Index: uint8(bitsRange(w, 0, 3))})

	case patPea.match(w):
		src, err := d.parseDst(LongSize)
		if err != nil {
			return err
		}
		inst.Op = OpPEA
		inst.setSrc(src)

	case patTas.match(w):
		dst, err := d.parseDst(ByteSize)
		if err != nil {
			return err
		}
		inst.Op = OpTAS
		inst.setDst(dst)

	case patExg.match(w) && bitsRange(w, 6, 2) != 3:
		dst := Target{Index: uint8(bitsRange(w, 0, 3))}
		src := Target{Index: uint8(bitsRange(w, 9, 3))}
		switch bitsRange(w, 3, 5) {
		case 0b01000:
			dst.Kind = TargetDataRegister
			src.Kind = TargetDataRegister
		case 0b01001:
			dst.Kind = TargetAddressRegister
			src.Kind = TargetAddressRegister
		default:
			dst.Kind = TargetAddressRegister
			src.Kind = TargetDataRegister
		}
		inst.Op = OpEXG
		inst.setSrc(src)
		inst.setDst(dst)

	case patExt.match(w):
		inst.Op = OpEXT
		inst.setDst(Target{Kind: TargetDataRegister, Index: uint8(bitsRange(w, 0, 3))})
		if bitAt(w, 6) {
			inst.Size = LongSize
		} else {
			inst.Size = WordSize
		}

	case patLink.match(w):
		ext, err := d.readWord()
		if err != nil {
			return err
		}
		inst.Op = OpLINK
		inst.setDst(Target{Kind: TargetAddressRegister, Index: uint8(bitsRange(w, 0, 3))})
		inst.Data = uint32(ext)

	case patUnlk.match(w):
		inst.Op = OpUNLK
		inst.setDst(Target{Kind: TargetAddressRegister, Index: uint8(bitsRange(w, 0, 3))})

	case patTrap.match(w):
		inst.Op = OpTRAP
		inst.Data = trapVectorOffset + uint32(bitsRange(w, 0, 4))

	case patTrapv.match(w):
		inst.Op = OpTRAPV
		inst.Data = trapvVector

	case patRte.match(w):
		inst.Op = OpRTE

	case patRts.match(w):
		inst.Op = OpRTS

	case patRtr.match(w):
		inst.Op = OpRTR

	case patTst.match(w):
		size := d.size0()
		src, err := d.parseDst(size)
		if err != nil {
			return err
		}
		inst.Op = OpTST
		inst.setSrc(src)
		inst.Size = size

	case patChk.match(w):
		src, err := d.parseDst(WordSize)
		if err != nil {
			return err
		}
		inst.Op = OpCHK
		inst.setSrc(src)
		inst.setDst(Target{Kind: TargetDataRegister, Index: uint8(bitsRange(w, 9, 3))})
		inst.Size = WordSize

	case patNbcd.match(w):
		dst, err := d.parseDst(ByteSize)
		if err != nil {
			return err
		}
		inst.Op = OpNBCD
		inst.setDst(dst)
		inst.Size = ByteSize

	case patMul.match(w):
		src, err := d.parseDst(WordSize)
		if err != nil {
			return err
		}
		if bitAt(w, 8) {
			inst.Op = OpMULS
		} else {
			inst.Op = OpMULU
		}
		inst.setSrc(src)
		inst.setDst(Target{Kind: TargetDataRegister, Index: uint8(bitsRange(w, 9, 3))})

	case patDiv.match(w):
		src, err := d.parseDst(WordSize)
		if err != nil {
			return err
		}
		if bitAt(w, 8) {
			inst.Op = OpDIVS
		} else {
			inst.Op = OpDIVU
		}
		inst.setSrc(src)
		inst.setDst(Target{Kind: TargetDataRegister, Index: uint8(bitsRange(w, 9, 3))})

	default:
		for _, family := range []func() (bool, error){
			d.parseStatusRegisterOp,
			d.parseBitOp,
			d.parseUnaryOp,
			d.parseShiftOp,
			d.parseBinaryOnAddressOp,
			d.parseBinaryOnImmediateOp,
			d.parseBinaryOp,
			d.parseMoveOp,
		} {
			ok, err := family()
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
		return hwio.Errorf(hwio.UnknownOpcode, "unknown opcode %04x", w)
	}

	return nil
}

// ORI/ANDI/EORI to CCR or SR.
func (d *decoder) parseStatusRegisterOp() (bool, error) {
	cases := []struct {
		ccr, sr Op
		index   uint16
	}{
		{OpORIToCCR, OpORIToSR, 0},
		{OpANDIToCCR, OpANDIToSR, 1},
		{OpEORIToCCR, OpEORIToSR, 5},
	}
	for _, c := range cases {
		if patToSR.match(d.w) && bitsRange(d.w, 9, 3) == c.index {
			isWord := bitAt(d.w, 6)

			pc := &d.ctx.Regs.PC
			src := Target{Kind: TargetImmediate, Address: *pc}
			if !isWord {
				src.Address = *pc + 1
			}
			*pc += 2

			if isWord {
				d.inst.Op = c.sr
			} else {
				d.inst.Op = c.ccr
			}
			d.inst.setSrc(src)
			return true, nil
		}
	}
	return false, nil
}

// BTST, BCHG, BCLR, BSET with register or immediate bit number.
func (d *decoder) parseBitOp() (bool, error) {
	ops := [4]Op{OpBTST, OpBCHG, OpBCLR, OpBSET}
	for i, op := range ops {
		if patBitReg[i].match(d.w) && bitsRange(d.w, 3, 3) != 1 {
			src := Target{Kind: TargetDataRegister, Index: uint8(bitsRange(d.w, 9, 3))}
			dst, err := d.parseDst(ByteSize)
			if err != nil {
				return false, err
			}
			d.inst.Op = op
			d.inst.setSrc(src)
			d.inst.setDst(dst)
			d.inst.Size = ByteSize
			return true, nil
		}
		if patBitImm[i].match(d.w) {
			pc := &d.ctx.Regs.PC
			src := Target{Kind: TargetImmediate, Address: *pc + 1}
			*pc += 2
			dst, err := d.parseDst(ByteSize)
			if err != nil {
				return false, err
			}
			d.inst.Op = op
			d.inst.setSrc(src)
			d.inst.setDst(dst)
			d.inst.Size = ByteSize
			return true, nil
		}
	}
	return false, nil
}

// NEGX, CLR, NEG, NOT.
func (d *decoder) parseUnaryOp() (bool, error) {
	ops := [4]Op{OpNEGX, OpCLR, OpNEG, OpNOT}
	for i, op := range ops {
		if patUnary[i].match(d.w) && bitsRange(d.w, 6, 2) != 3 {
			size := d.size0()
			dst, err := d.parseDst(size)
			if err != nil {
				return false, err
			}
			d.inst.Op = op
			d.inst.setDst(dst)
			d.inst.Size = size
			return true, nil
		}
	}
	return false, nil
}

// ASL/ASR, LSL/LSR, ROXL/ROXR, ROL/ROR with immediate count, register
// count, or memory-by-one form.
func (d *decoder) parseShiftOp() (bool, error) {
	cases := []struct {
		left, right Op
		index       uint16
	}{
		{OpASL, OpASR, 0},
		{OpLSL, OpLSR, 1},
		{OpROXL, OpROXR, 2},
		{OpROL, OpROR, 3},
	}

	for _, c := range cases {
		if patShiftMem.match(d.w) && bitsRange(d.w, 9, 2) == c.index {
			// memory form, always shifts by one word position
			op := c.right
			if bitAt(d.w, 8) {
				op = c.left
			}
			dst, err := d.parseDst(WordSize)
			if err != nil {
				return false, err
			}
			d.inst.Op = op
			d.inst.setDst(dst)
			d.inst.Size = WordSize
			d.inst.Data = 1
			return true, nil
		}
		if patShiftReg.match(d.w) && bitsRange(d.w, 3, 2) == c.index && bitsRange(d.w, 6, 2) != 3 {
			op := c.right
			if bitAt(d.w, 8) {
				op = c.left
			}
			rotation := uint8(bitsRange(d.w, 9, 3))

			d.inst.Op = op
			d.inst.setDst(Target{Kind: TargetDataRegister, Index: uint8(bitsRange(d.w, 0, 3))})
			d.inst.Size = d.size0()
			if bitAt(d.w, 5) {
				// shift count lives in a data register
				d.inst.setSrc(Target{Kind: TargetDataRegister, Index: rotation})
			} else {
				d.inst.Data = uint32(rotation)
			}
			return true, nil
		}
	}
	return false, nil
}

// ORI, ANDI, SUBI, ADDI, EORI, CMPI.
func (d *decoder) parseBinaryOnImmediateOp() (bool, error) {
	cases := []struct {
		op    Op
		index uint16
	}{
		{OpORI, 0}, {OpANDI, 1}, {OpSUBI, 2}, {OpADDI, 3}, {OpEORI, 5}, {OpCMPI, 6},
	}
	for _, c := range cases {
		if patBinImm.match(d.w) && bitsRange(d.w, 9, 3) == c.index {
			size := d.size0()
			src := d.immediate(size)
			dst, err := d.parseDst(size)
			if err != nil {
				return false, err
			}
			d.inst.Op = c.op
			d.inst.setSrc(src)
			d.inst.setDst(dst)
			d.inst.Size = size
			return true, nil
		}
	}
	return false, nil
}

// OR, SUB, EOR, AND, ADD between a data register and an effective address.
// With the direction bit clear EOR re-encodes as CMP.
func (d *decoder) parseBinaryOp() (bool, error) {
	cases := []struct {
		op    Op
		index uint16
	}{
		{OpOR, 0}, {OpSUB, 1}, {OpEOR, 3}, {OpAND, 4}, {OpADD, 5},
	}
	for _, c := range cases {
		if patBinary.match(d.w) && bitsRange(d.w, 12, 3) == c.index {
			size := d.size0()
			src := Target{Kind: TargetDataRegister, Index: uint8(bitsRange(d.w, 9, 3))}
			dst, err := d.parseDst(size)
			if err != nil {
				return false, err
			}
			op := c.op
			if !bitAt(d.w, 8) {
				if op == OpEOR {
					op = OpCMP
				}
				src, dst = dst, src
			}
			d.inst.Op = op
			d.inst.setSrc(src)
			d.inst.setDst(dst)
			d.inst.Size = size
			return true, nil
		}
	}
	return false, nil
}

// SUBA, CMPA, ADDA. Word-sized sources are sign-extended to long on
// execute.
func (d *decoder) parseBinaryOnAddressOp() (bool, error) {
	cases := []struct {
		op    Op
		index uint16
	}{
		{OpSUBA, 0}, {OpCMPA, 1}, {OpADDA, 2},
	}
	for _, c := range cases {
		if patBinAddr.match(d.w) && bitsRange(d.w, 13, 2) == c.index {
			size := WordSize
			if bitAt(d.w, 8) {
				size = LongSize
			}
			src, err := d.parseDst(size)
			if err != nil {
				return false, err
			}
			d.inst.Op = c.op
			d.inst.setSrc(src)
			d.inst.setDst(Target{Kind: TargetAddressRegister, Index: uint8(bitsRange(d.w, 9, 3))})
			d.inst.Size = size
			return true, nil
		}
	}
	return false, nil
}

// The move family: MOVE/MOVEA, MOVEP, MOVEM, MOVEQ and the SR/CCR/USP
// moves.
func (d *decoder) parseMoveOp() (bool, error) {
	w := d.w

	// MOVEP before MOVE: its encoding (mode 001 with the 0000 prefix)
	// never reaches the MOVE size check below, but keeping the original
	// probe order makes the overlap reasoning local.
	if patMovep.match(w) {
		size := WordSize
		if bitAt(w, 6) {
			size = LongSize
		}

		src := Target{Kind: TargetDataRegister, Index: uint8(bitsRange(w, 9, 3))}

		ext, err := d.readWord()
		if err != nil {
			return false, err
		}
		dst := Target{Kind: TargetAddressDisplacement, Index: uint8(bitsRange(w, 0, 3)), ExtWord0: ext}

		if !bitAt(w, 7) {
			src, dst = dst, src
		}
		d.inst.Op = OpMOVEP
		d.inst.setSrc(src)
		d.inst.setDst(dst)
		d.inst.Size = size
		return true, nil
	}

	// MOVEM
	if patMovem.match(w) {
		mask, err := d.readWord()
		if err != nil {
			return false, err
		}
		size := WordSize
		if bitAt(w, 6) {
			size = LongSize
		}
		target, err := d.parseDst(size)
		if err != nil {
			return false, err
		}
		d.inst.Op = OpMOVEM
		d.inst.Data = uint32(mask)
		d.inst.Size = size
		if bitAt(w, 10) {
			d.inst.setSrc(target)
		} else {
			d.inst.setDst(target)
		}
		return true, nil
	}

	// MOVEQ
	if patMoveq.match(w) {
		d.inst.Op = OpMOVEQ
		d.inst.Data = uint32(bitsRange(w, 0, 8))
		d.inst.setDst(Target{Kind: TargetDataRegister, Index: uint8(bitsRange(w, 9, 3))})
		return true, nil
	}

	// MOVEtoCCR / MOVEtoSR
	if patMoveToCcrSr.match(w) {
		src, err := d.parseDst(WordSize)
		if err != nil {
			return false, err
		}
		if bitAt(w, 9) {
			d.inst.Op = OpMOVEToSR
		} else {
			d.inst.Op = OpMOVEToCCR
		}
		d.inst.setSrc(src)
		return true, nil
	}

	// MOVEfromSR
	if patMoveFromSr.match(w) {
		dst, err := d.parseDst(WordSize)
		if err != nil {
			return false, err
		}
		d.inst.Op = OpMOVEFromSR
		d.inst.setDst(dst)
		return true, nil
	}

	// MOVEtoUSP
	if patMoveToUsp.match(w) {
		d.inst.Op = OpMOVEToUSP
		d.inst.setSrc(Target{Kind: TargetAddressRegister, Index: uint8(bitsRange(w, 0, 3))})
		return true, nil
	}

	// MOVEfromUSP
	if patMoveFromUsp.match(w) {
		d.inst.Op = OpMOVEFromUSP
		d.inst.setDst(Target{Kind: TargetAddressRegister, Index: uint8(bitsRange(w, 0, 3))})
		return true, nil
	}

	// MOVE / MOVEA. The move family has its own two-bit size code.
	if patMove.match(w) {
		var size Size
		switch bitsRange(w, 12, 2) {
		case 0b01:
			size = ByteSize
		case 0b11:
			size = WordSize
		case 0b10:
			size = LongSize
		default:
			return false, nil
		}
		src, err := d.parseTarget(size, 3, 0)
		if err != nil {
			return false, err
		}
		// remember the PC between the source and destination extension
		// words: PC-relative destinations resolve against it on execute
		pc := d.ctx.Regs.PC
		dst, err := d.parseTarget(size, 6, 9)
		if err != nil {
			return false, err
		}
		if bitsRange(w, 6, 3) == 1 {
			d.inst.Op = OpMOVEA
		} else {
			d.inst.Op = OpMOVE
		}
		d.inst.setSrc(src)
		d.inst.setDst(dst)
		d.inst.Size = size
		d.inst.Data = pc
		return true, nil
	}

	return false, nil
}
