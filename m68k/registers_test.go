package m68k

import "testing"

func TestSRFlags(t *testing.T) {
	var sr SR
	sr.SetCarry(true)
	sr.SetZero(true)
	if uint16(sr) != 0b0101 {
		t.Errorf("SR = %04x, want 0005", uint16(sr))
	}
	sr.SetCarry(false)
	if sr.Carry() {
		t.Error("C should be clear")
	}
	if !sr.Zero() {
		t.Error("Z should still be set")
	}
}

func TestSRWriteMaskDropsBits12And14(t *testing.T) {
	var sr SR
	sr.SetWord(0xFFFF)
	if uint16(sr) != 0xAFFF {
		t.Errorf("SR = %04x, want afff", uint16(sr))
	}
}

func TestSRInterruptMask(t *testing.T) {
	var sr SR
	sr.SetInterruptMask(6)
	if sr.InterruptMask() != 6 {
		t.Errorf("mask = %d, want 6", sr.InterruptMask())
	}
	sr.SetInterruptMask(0)
	if sr.InterruptMask() != 0 {
		t.Errorf("mask = %d, want 0", sr.InterruptMask())
	}
}

func TestActiveStackPointer(t *testing.T) {
	var r Registers
	r.USP = 0x1000
	r.SSP = 0x2000

	if *r.StackPtr() != 0x1000 {
		t.Error("user mode must select USP")
	}
	r.SR.SetSupervisor(true)
	if *r.StackPtr() != 0x2000 {
		t.Error("supervisor mode must select SSP")
	}

	// A7 resolves to the active stack pointer
	if r.AReg(7) != &r.SSP {
		t.Error("A7 should alias SSP in supervisor mode")
	}
	if r.AReg(3) != &r.A[3] {
		t.Error("A3 should be a plain address register")
	}
}

func TestCondHolds(t *testing.T) {
	var sr SR

	if !CondT.Holds(sr) || CondF.Holds(sr) {
		t.Error("T always holds, F never")
	}

	sr.SetZero(true)
	if !CondEQ.Holds(sr) || CondNE.Holds(sr) {
		t.Error("EQ/NE disagree with Z")
	}

	sr = 0
	sr.SetNegative(true)
	if !CondLT.Holds(sr) {
		t.Error("LT should hold with N set, V clear")
	}
	sr.SetOverflow(true)
	if !CondGE.Holds(sr) {
		t.Error("GE should hold with N and V both set")
	}
}
