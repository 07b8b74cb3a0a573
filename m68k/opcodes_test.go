package m68k

import (
	"testing"

	"megado/hw/hwio"
)

// opcodeTest drives one instruction from a clean CPU and checks registers
// and flags afterwards.
type opcodeTest struct {
	name  string
	words []uint16
	setup func(c *cpu)
	check func(t *testing.T, c *cpu)
}

func (tt opcodeTest) run(t *testing.T) {
	c := newCPU()
	c.bus.loadWords(0x1000, tt.words...)
	c.regs.PC = 0x1000
	if tt.setup != nil {
		tt.setup(c)
	}
	if err := c.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	tt.check(t, c)
}

func wantD(t *testing.T, c *cpu, idx int, want uint32) {
	t.Helper()
	if c.regs.D[idx] != want {
		t.Errorf("D%d = %08x, want %08x", idx, c.regs.D[idx], want)
	}
}

func wantFlags(t *testing.T, c *cpu, want string) {
	t.Helper()
	// want is a subset of "XNZVC"; listed flags must be set, the rest of
	// the CCR must be clear
	flags := map[byte]bool{
		'X': c.regs.SR.Extend(),
		'N': c.regs.SR.Negative(),
		'Z': c.regs.SR.Zero(),
		'V': c.regs.SR.Overflow(),
		'C': c.regs.SR.Carry(),
	}
	for name, got := range flags {
		wanted := false
		for i := 0; i < len(want); i++ {
			if want[i] == name {
				wanted = true
			}
		}
		if got != wanted {
			t.Errorf("flag %c = %t, want %t (SR=[%s])", name, got, wanted, c.regs.SR)
		}
	}
}

func TestOpcodes(t *testing.T) {
	tests := []opcodeTest{
		{
			name:  "NOT.b keeps upper bytes",
			words: []uint16{0x4600},
			setup: func(c *cpu) { c.regs.D[0] = 0xFF00FF0F },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0xFF00FFF0)
				wantFlags(t, c, "N")
			},
		},
		{
			name:  "CLR.w",
			words: []uint16{0x4241},
			setup: func(c *cpu) { c.regs.D[1] = 0xDEADBEEF },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 1, 0xDEAD0000)
				wantFlags(t, c, "Z")
			},
		},
		{
			name:  "NEG.b of 1",
			words: []uint16{0x4400},
			setup: func(c *cpu) { c.regs.D[0] = 1 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0xFF)
				wantFlags(t, c, "XNC")
			},
		},
		{
			name:  "EXT.w sign extends the byte",
			words: []uint16{0x4880},
			setup: func(c *cpu) { c.regs.D[0] = 0x80 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0xFF80)
				wantFlags(t, c, "N")
			},
		},
		{
			name:  "EXT.l sign extends the word",
			words: []uint16{0x48C0},
			setup: func(c *cpu) { c.regs.D[0] = 0x8000 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0xFFFF8000)
				wantFlags(t, c, "N")
			},
		},
		{
			name:  "LSR.w shifts the last bit into C and X",
			words: []uint16{0xE248},
			setup: func(c *cpu) { c.regs.D[0] = 1 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0)
				wantFlags(t, c, "XZC")
			},
		},
		{
			name:  "ROL.b wraps the msb around",
			words: []uint16{0xE318},
			setup: func(c *cpu) { c.regs.D[0] = 0x80 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0x01)
				wantFlags(t, c, "C")
			},
		},
		{
			name:  "ROR.b wraps bit 0 around",
			words: []uint16{0xE218},
			setup: func(c *cpu) { c.regs.D[0] = 0x01 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0x80)
				wantFlags(t, c, "NC")
			},
		},
		{
			name:  "OR.b",
			words: []uint16{0x8001},
			setup: func(c *cpu) {
				c.regs.D[0] = 0xF0
				c.regs.D[1] = 0x0F
			},
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0xFF)
				wantFlags(t, c, "N")
			},
		},
		{
			name:  "SUB.w",
			words: []uint16{0x9041},
			setup: func(c *cpu) {
				c.regs.D[0] = 5
				c.regs.D[1] = 3
			},
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 2)
				wantFlags(t, c, "")
			},
		},
		{
			name:  "SUB.w borrow sets X and C",
			words: []uint16{0x9041},
			setup: func(c *cpu) {
				c.regs.D[0] = 3
				c.regs.D[1] = 5
			},
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0xFFFE)
				wantFlags(t, c, "XNC")
			},
		},
		{
			name:  "BTST #3 on a clear bit sets Z",
			words: []uint16{0x0800, 0x0003},
			setup: func(c *cpu) { c.regs.D[0] = 0xF7 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0xF7)
				if !c.regs.SR.Zero() {
					t.Error("Z should be set for a clear bit")
				}
			},
		},
		{
			name:  "BSET #0",
			words: []uint16{0x08C0, 0x0000},
			setup: func(c *cpu) { c.regs.D[0] = 0 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 1)
				if !c.regs.SR.Zero() {
					t.Error("Z reflects the bit before the change")
				}
			},
		},
		{
			name:  "BCLR #31 works on the full register",
			words: []uint16{0x0880, 0x001F},
			setup: func(c *cpu) { c.regs.D[0] = 0x80000000 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0)
				if c.regs.SR.Zero() {
					t.Error("Z reflects the bit before the change")
				}
			},
		},
		{
			name:  "LEA d16(A0),A1",
			words: []uint16{0x43E8, 0x0010},
			setup: func(c *cpu) { c.regs.A[0] = 0x4000 },
			check: func(t *testing.T, c *cpu) {
				if c.regs.A[1] != 0x4010 {
					t.Errorf("A1 = %08x, want 00004010", c.regs.A[1])
				}
			},
		},
		{
			name:  "PEA (A0)",
			words: []uint16{0x4850},
			setup: func(c *cpu) {
				c.regs.A[0] = 0x123456
				c.regs.USP = 0x2000
			},
			check: func(t *testing.T, c *cpu) {
				if c.regs.USP != 0x1FFC {
					t.Fatalf("USP = %08x, want 00001ffc", c.regs.USP)
				}
				v, err := hwio.ReadLong(c.bus, c.regs.USP)
				if err != nil {
					t.Fatal(err)
				}
				if v != 0x123456 {
					t.Errorf("pushed %08x, want 00123456", v)
				}
			},
		},
		{
			name:  "LINK A6 builds a frame",
			words: []uint16{0x4E56, 0xFFF8},
			setup: func(c *cpu) {
				c.regs.A[6] = 0xAABBCCDD
				c.regs.USP = 0x2000
			},
			check: func(t *testing.T, c *cpu) {
				if c.regs.A[6] != 0x1FFC {
					t.Errorf("A6 = %08x, want the new frame pointer 00001ffc", c.regs.A[6])
				}
				if c.regs.USP != 0x1FFC-8 {
					t.Errorf("USP = %08x, want %08x", c.regs.USP, uint32(0x1FFC-8))
				}
				v, _ := hwio.ReadLong(c.bus, 0x1FFC)
				if v != 0xAABBCCDD {
					t.Errorf("saved A6 = %08x, want aabbccdd", v)
				}
			},
		},
		{
			name:  "UNLK A6 tears the frame down",
			words: []uint16{0x4E5E},
			setup: func(c *cpu) {
				c.regs.A[6] = 0x1FFC
				c.regs.USP = 0x1F00
				c.bus.loadWords(0x1FFC, 0xAABB, 0xCCDD)
			},
			check: func(t *testing.T, c *cpu) {
				if c.regs.USP != 0x2000 {
					t.Errorf("USP = %08x, want 00002000", c.regs.USP)
				}
				if c.regs.A[6] != 0xAABBCCDD {
					t.Errorf("A6 = %08x, want aabbccdd", c.regs.A[6])
				}
			},
		},
		{
			name:  "MOVEP.w register to memory on the high lane",
			words: []uint16{0x0188, 0x0000},
			setup: func(c *cpu) {
				c.regs.D[0] = 0xBEEF
				c.regs.A[0] = 0x3000
			},
			check: func(t *testing.T, c *cpu) {
				hi, _ := hwio.ReadByte(c.bus, 0x3000)
				lo, _ := hwio.ReadByte(c.bus, 0x3002)
				if hi != 0xBE || lo != 0xEF {
					t.Errorf("memory = %02x/%02x, want be/ef on alternating bytes", hi, lo)
				}
			},
		},
		{
			name:  "MOVEP.w memory to register",
			words: []uint16{0x0108, 0x0000},
			setup: func(c *cpu) {
				c.regs.A[0] = 0x3000
				c.bus.loadBytes(0x3000, 0xBE, 0x00, 0xEF, 0x00)
			},
			check: func(t *testing.T, c *cpu) {
				if uint16(c.regs.D[0]) != 0xBEEF {
					t.Errorf("D0.w = %04x, want beef", uint16(c.regs.D[0]))
				}
			},
		},
		{
			name:  "SEQ sets the byte when Z holds",
			words: []uint16{0x57C0},
			setup: func(c *cpu) { c.regs.SR.SetZero(true) },
			check: func(t *testing.T, c *cpu) {
				if uint8(c.regs.D[0]) != 0xFF {
					t.Errorf("D0.b = %02x, want ff", uint8(c.regs.D[0]))
				}
			},
		},
		{
			name:  "ORI to CCR sets carry",
			words: []uint16{0x003C, 0x0001},
			check: func(t *testing.T, c *cpu) {
				if !c.regs.SR.Carry() {
					t.Error("C should be set")
				}
			},
		},
		{
			name:  "ANDI to CCR clears carry",
			words: []uint16{0x023C, 0x00FE},
			setup: func(c *cpu) { c.regs.SR.SetCarry(true) },
			check: func(t *testing.T, c *cpu) {
				if c.regs.SR.Carry() {
					t.Error("C should be cleared")
				}
			},
		},
		{
			name:  "MOVE #imm,SR applies the write mask",
			words: []uint16{0x46FC, 0x2700},
			check: func(t *testing.T, c *cpu) {
				if uint16(c.regs.SR) != 0x2700 {
					t.Errorf("SR = %04x, want 2700", uint16(c.regs.SR))
				}
				if !c.regs.SR.Supervisor() {
					t.Error("supervisor should be set")
				}
				if c.regs.SR.InterruptMask() != 7 {
					t.Errorf("interrupt mask = %d, want 7", c.regs.SR.InterruptMask())
				}
			},
		},
		{
			name:  "MOVE SR,D0",
			words: []uint16{0x40C0},
			setup: func(c *cpu) { c.regs.SR.SetCarry(true) },
			check: func(t *testing.T, c *cpu) {
				if uint16(c.regs.D[0]) != 0x0001 {
					t.Errorf("D0.w = %04x, want 0001", uint16(c.regs.D[0]))
				}
			},
		},
		{
			name:  "MOVE A0,USP and back",
			words: []uint16{0x4E60, 0x4E69},
			setup: func(c *cpu) { c.regs.A[0] = 0x1234 },
			check: func(t *testing.T, c *cpu) {
				if c.regs.USP != 0x1234 {
					t.Fatalf("USP = %08x, want 00001234", c.regs.USP)
				}
				if err := c.step(); err != nil {
					t.Fatal(err)
				}
				if c.regs.A[1] != 0x1234 {
					t.Errorf("A1 = %08x, want 00001234", c.regs.A[1])
				}
			},
		},
		{
			name:  "JSR (A0) pushes the return address",
			words: []uint16{0x4E90},
			setup: func(c *cpu) {
				c.regs.A[0] = 0x4000
				c.regs.USP = 0x2000
			},
			check: func(t *testing.T, c *cpu) {
				if c.regs.PC != 0x4000 {
					t.Fatalf("PC = %06x, want 004000", c.regs.PC)
				}
				ret, _ := hwio.ReadLong(c.bus, c.regs.USP)
				if ret != 0x1002 {
					t.Errorf("return address = %06x, want 001002", ret)
				}
			},
		},
		{
			name:  "JMP (A0)",
			words: []uint16{0x4ED0},
			setup: func(c *cpu) {
				c.regs.A[0] = 0x4000
				c.regs.USP = 0x2000
			},
			check: func(t *testing.T, c *cpu) {
				if c.regs.PC != 0x4000 {
					t.Errorf("PC = %06x, want 004000", c.regs.PC)
				}
				if c.regs.USP != 0x2000 {
					t.Error("JMP must not touch the stack")
				}
			},
		},
		{
			name:  "TAS sets the high bit, flags see the old value",
			words: []uint16{0x4AC0},
			setup: func(c *cpu) { c.regs.D[0] = 0 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0x80)
				if !c.regs.SR.Zero() {
					t.Error("Z tests the value before the set")
				}
			},
		},
		{
			name:  "ADDX.b adds the extend bit",
			words: []uint16{0xD300},
			setup: func(c *cpu) {
				c.regs.D[0] = 0x01
				c.regs.D[1] = 0x02
				c.regs.SR.SetExtend(true)
			},
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 1, 0x04)
			},
		},
		{
			name:  "CMPM.b advances both pointers",
			words: []uint16{0xB308},
			setup: func(c *cpu) {
				c.regs.A[0] = 0x3000
				c.regs.A[1] = 0x3100
				c.bus.loadBytes(0x3000, 0x11)
				c.bus.loadBytes(0x3100, 0x11)
			},
			check: func(t *testing.T, c *cpu) {
				if !c.regs.SR.Zero() {
					t.Error("equal bytes should set Z")
				}
				if c.regs.A[0] != 0x3001 || c.regs.A[1] != 0x3101 {
					t.Errorf("A0/A1 = %x/%x, both should post-increment", c.regs.A[0], c.regs.A[1])
				}
			},
		},
		{
			name:  "MULU.w",
			words: []uint16{0xC0C1},
			setup: func(c *cpu) {
				c.regs.D[0] = 0xFFFF
				c.regs.D[1] = 0xFFFF
			},
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0xFFFE0001)
			},
		},
		{
			name:  "DIVS.w packs quotient and remainder",
			words: []uint16{0x81C1},
			setup: func(c *cpu) {
				c.regs.D[0] = uint32(0xFFFFFFF9) // -7
				c.regs.D[1] = 2
			},
			check: func(t *testing.T, c *cpu) {
				// -7 / 2 = -3 rem -1
				if uint16(c.regs.D[0]) != 0xFFFD {
					t.Errorf("quotient = %04x, want fffd", uint16(c.regs.D[0]))
				}
				if uint16(c.regs.D[0]>>16) != 0xFFFF {
					t.Errorf("remainder = %04x, want ffff", uint16(c.regs.D[0]>>16))
				}
			},
		},
		{
			name:  "SBCD",
			words: []uint16{0x8300}, // SBCD D0,D1
			setup: func(c *cpu) {
				c.regs.D[0] = 0x25
				c.regs.D[1] = 0x47
			},
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 1, 0x22)
				if c.regs.SR.Carry() || c.regs.SR.Extend() {
					t.Error("no borrow expected")
				}
			},
		},
		{
			name:  "NBCD of zero stays zero",
			words: []uint16{0x4800},
			setup: func(c *cpu) { c.regs.D[0] = 0 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 0)
				if c.regs.SR.Carry() {
					t.Error("no borrow for 0 - 0")
				}
			},
		},
		{
			name:  "ADDQ.w #8 uses 8 for the zero encoding",
			words: []uint16{0x5040},
			setup: func(c *cpu) { c.regs.D[0] = 1 },
			check: func(t *testing.T, c *cpu) {
				wantD(t, c, 0, 9)
			},
		},
		{
			name:  "ADDA.w sign extends the source",
			words: []uint16{0xD0FC, 0xFFFE}, // ADDA.w #-2,A0
			setup: func(c *cpu) { c.regs.A[0] = 0x1000 },
			check: func(t *testing.T, c *cpu) {
				if c.regs.A[0] != 0x0FFE {
					t.Errorf("A0 = %08x, want 00000ffe", c.regs.A[0])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.run)
	}
}
