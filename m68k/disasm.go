package m68k

import (
	"fmt"
	"strings"
)

// String renders the instruction in assembler-like form for trace logs.
// Immediate operand values live in the instruction stream, not in the
// Instruction itself, so they print symbolically.
func (inst *Instruction) String() string {
	var sb strings.Builder

	switch inst.Op {
	case OpBcc:
		fmt.Fprintf(&sb, "B%s", inst.Cond)
	case OpDBcc:
		fmt.Fprintf(&sb, "DB%s", inst.Cond)
	case OpScc:
		fmt.Fprintf(&sb, "S%s", inst.Cond)
	default:
		sb.WriteString(inst.Op.String())
	}

	switch inst.Op {
	case OpADD, OpADDI, OpADDQ, OpADDX, OpADDA, OpAND, OpANDI, OpSUB, OpSUBI, OpSUBQ, OpSUBX, OpSUBA,
		OpOR, OpORI, OpEOR, OpEORI, OpCMP, OpCMPI, OpCMPM, OpCMPA, OpMOVE, OpMOVEA, OpMOVEM, OpMOVEP,
		OpCLR, OpNEG, OpNEGX, OpNOT, OpTST, OpEXT,
		OpASL, OpASR, OpLSL, OpLSR, OpROL, OpROR, OpROXL, OpROXR:
		fmt.Fprintf(&sb, ".%s", inst.Size)
	case OpBcc, OpBSR:
		if inst.Size == ByteSize {
			sb.WriteString(".b")
		} else {
			sb.WriteString(".w")
		}
	}

	var operands []string
	switch inst.Op {
	case OpADDQ, OpSUBQ:
		q := inst.Data
		if q == 0 {
			q = 8
		}
		operands = append(operands, fmt.Sprintf("#%d", q))
	case OpMOVEQ:
		operands = append(operands, fmt.Sprintf("#%d", int8(inst.Data)))
	case OpTRAP:
		operands = append(operands, fmt.Sprintf("#%d", inst.Data-trapVectorOffset))
	case OpBcc, OpBSR:
		if inst.Size == ByteSize {
			operands = append(operands, fmt.Sprintf("*%+d", int8(inst.Data)))
		} else {
			operands = append(operands, fmt.Sprintf("*%+d", int16(inst.Data)))
		}
	case OpASL, OpASR, OpLSL, OpLSR, OpROL, OpROR, OpROXL, OpROXR:
		if !inst.HasSrc {
			rot := inst.Data
			if rot == 0 {
				rot = 8
			}
			operands = append(operands, fmt.Sprintf("#%d", rot))
		}
	case OpMOVEM:
		operands = append(operands, fmt.Sprintf("#%04x", uint16(inst.Data)))
	case OpLINK:
		operands = append(operands, fmt.Sprintf("#%d", int16(inst.Data)))
	}

	if inst.HasSrc {
		operands = append(operands, inst.Src.String())
	}
	switch inst.Op {
	case OpMOVEToCCR:
		operands = append(operands, "CCR")
	case OpMOVEToSR, OpANDIToSR, OpORIToSR, OpEORIToSR:
		operands = append(operands, "SR")
	case OpANDIToCCR, OpORIToCCR, OpEORIToCCR:
		operands = append(operands, "CCR")
	case OpMOVEToUSP:
		operands = append(operands, "USP")
	case OpMOVEFromSR:
		operands = append([]string{"SR"}, operands...)
	case OpMOVEFromUSP:
		operands = append([]string{"USP"}, operands...)
	}
	if inst.HasDst {
		operands = append(operands, inst.Dst.String())
	}
	if inst.Op == OpDBcc {
		operands = append(operands, fmt.Sprintf("*%+d", int16(inst.Data)))
	}

	if len(operands) > 0 {
		sb.WriteByte(' ')
		sb.WriteString(strings.Join(operands, ", "))
	}
	return sb.String()
}
