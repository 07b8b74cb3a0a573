package m68k

import (
	"testing"
)

func TestTargetEffectiveAddress(t *testing.T) {
	c := newCPU()
	c.regs.A[2] = 0x4000
	c.regs.D[3] = 0x10
	c.regs.PC = 0x1002 // as if the extension word was just consumed

	tests := []struct {
		name   string
		target Target
		want   uint32
	}{
		{"(An)", Target{Kind: TargetAddress, Index: 2}, 0x4000},
		{"d16(An)", Target{Kind: TargetAddressDisplacement, Index: 2, ExtWord0: 0xFFFE}, 0x3FFE},
		{"d8(An,Dn.w)", Target{Kind: TargetAddressIndex, Index: 2, ExtWord0: 0x3004}, 0x4014},
		{"d16(PC)", Target{Kind: TargetPCDisplacement, ExtWord0: 0x0010}, 0x1010},
		{"abs.w sign extends", Target{Kind: TargetAbsoluteShort, ExtWord0: 0x8000}, 0xFFFF8000},
		{"abs.l", Target{Kind: TargetAbsoluteLong, ExtWord0: 0x00FF, ExtWord1: 0x0042}, 0x00FF0042},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.EffectiveAddress(c.ctx()); got != tt.want {
				t.Errorf("effective address = %08x, want %08x", got, tt.want)
			}
		})
	}
}

func TestTargetRegisterWritePreservesUpperBytes(t *testing.T) {
	c := newCPU()
	c.regs.D[0] = 0xAABBCCDD

	target := Target{Kind: TargetDataRegister, Index: 0}
	if err := target.WriteWord(c.ctx(), 0x1122); err != nil {
		t.Fatal(err)
	}
	if c.regs.D[0] != 0xAABB1122 {
		t.Errorf("D0 = %08x, want aabb1122", c.regs.D[0])
	}

	if err := target.WriteByte(c.ctx(), 0x33); err != nil {
		t.Fatal(err)
	}
	if c.regs.D[0] != 0xAABB1133 {
		t.Errorf("D0 = %08x, want aabb1133", c.regs.D[0])
	}
}

func TestTargetPredecrementFiresOnce(t *testing.T) {
	c := newCPU()
	c.regs.A[1] = 0x1000

	target := Target{Kind: TargetAddressDecrement, Index: 1, Size: 2}
	var buf [2]byte
	if err := target.Read(c.ctx(), buf[:]); err != nil {
		t.Fatal(err)
	}
	if err := target.Write(c.ctx(), buf[:]); err != nil {
		t.Fatal(err)
	}
	// read then write through the same operand decrements only once
	if c.regs.A[1] != 0x0FFE {
		t.Errorf("A1 = %08x, want 00000ffe", c.regs.A[1])
	}
}

func TestTargetIndexedAddressLongIndex(t *testing.T) {
	c := newCPU()
	c.regs.A[0] = 0x1000
	c.regs.A[3] = 0x00020000

	// ext word: index register A3, long size, displacement -4
	ext := uint16(1)<<15 | uint16(3)<<12 | uint16(1)<<11 | uint16(0xFC)
	target := Target{Kind: TargetAddressIndex, Index: 0, ExtWord0: ext}
	if got := target.EffectiveAddress(c.ctx()); got != 0x00020FFC {
		t.Errorf("effective address = %08x, want 00020ffc", got)
	}
}

func TestTargetImmediateReadsFromStream(t *testing.T) {
	c := newCPU()
	c.bus.loadWords(0x100, 0x1234)

	target := Target{Kind: TargetImmediate, Address: 0x100}
	val, err := target.ReadWord(c.ctx())
	if err != nil {
		t.Fatal(err)
	}
	if val != 0x1234 {
		t.Errorf("immediate = %04x, want 1234", val)
	}
}
