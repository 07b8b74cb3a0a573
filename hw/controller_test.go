package hw

import (
	"testing"

	"megado/hw/hwio"
)

func TestControllerVersion(t *testing.T) {
	c := NewController()

	b, err := hwio.ReadByte(c, ctrlVersion)
	if err != nil {
		t.Fatal(err)
	}
	// version 0xF, no expansion, NTSC, overseas
	if b != 0xAF {
		t.Errorf("version = %02x, want af", b)
	}
}

func TestControllerStepMachine(t *testing.T) {
	c := NewController()
	c.SetButton(0, Up, true)
	c.SetButton(0, B, true)
	c.SetButton(0, A, true)
	c.SetButton(0, Start, true)

	// a write of 0x40 selects step 1: !(Up,Down,Left,Right,B,C)
	if err := hwio.WriteByte(c, ctrlData1, 0x40); err != nil {
		t.Fatal(err)
	}
	b, err := hwio.ReadByte(c, ctrlData1)
	if err != nil {
		t.Fatal(err)
	}
	if want := uint8(0b101110); b != want {
		t.Errorf("step1 = %06b, want %06b", b, want)
	}

	// any other write selects step 2: !(Up,Down,-,-,A,Start)
	if err := hwio.WriteByte(c, ctrlData1, 0x00); err != nil {
		t.Fatal(err)
	}
	b, err = hwio.ReadByte(c, ctrlData1)
	if err != nil {
		t.Fatal(err)
	}
	if want := uint8(0b000010); b != want {
		t.Errorf("step2 = %06b, want %06b", b, want)
	}
}

func TestControllerPortsAreIndependent(t *testing.T) {
	c := NewController()
	c.SetButton(1, Start, true)

	if err := hwio.WriteByte(c, ctrlData2, 0x00); err != nil {
		t.Fatal(err)
	}
	pad2, err := hwio.ReadByte(c, ctrlData2)
	if err != nil {
		t.Fatal(err)
	}
	if pad2&(1<<5) != 0 {
		t.Error("pad 2 Start should read pressed (bit clear)")
	}

	if err := hwio.WriteByte(c, ctrlData1, 0x00); err != nil {
		t.Fatal(err)
	}
	pad1, err := hwio.ReadByte(c, ctrlData1)
	if err != nil {
		t.Fatal(err)
	}
	if pad1&(1<<5) == 0 {
		t.Error("pad 1 Start should read released (bit set)")
	}
}

func TestControllerControlRegistersReadBack(t *testing.T) {
	c := NewController()
	if err := hwio.WriteByte(c, ctrlCtrl1, 0x40); err != nil {
		t.Fatal(err)
	}
	b, err := hwio.ReadByte(c, ctrlCtrl1)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x40 {
		t.Errorf("ctrl1 = %02x, want 40", b)
	}
}

func TestZ80BusRequestHandshake(t *testing.T) {
	z := NewZ80Control()

	// request the bus: the read-back alternates 0x100 -> 0x000
	if err := hwio.WriteWord(z, z80BusRequest, 0x100); err != nil {
		t.Fatal(err)
	}
	v, err := hwio.ReadWord(z, z80BusRequest)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0x000 {
		t.Errorf("after writing 0x100 the read-back is %04x, want 0000", v)
	}

	if err := hwio.WriteWord(z, z80BusRequest, 0x000); err != nil {
		t.Fatal(err)
	}
	if v, _ = hwio.ReadWord(z, z80BusRequest); v != 0x100 {
		t.Errorf("after writing 0x000 the read-back is %04x, want 0100", v)
	}
}

func TestTrademarkRegister(t *testing.T) {
	tm := NewTrademark()

	if err := hwio.WriteLong(tm, TrademarkBegin, 0x53454741); err != nil {
		t.Errorf("'SEGA' write: %v", err)
	}
	err := hwio.WriteLong(tm, TrademarkBegin, 0x12345678)
	if hwio.KindOf(err) != hwio.InvalidWrite {
		t.Errorf("bad value: got %v, want InvalidWrite", err)
	}
	err = hwio.WriteWord(tm, TrademarkBegin, 0x5345)
	if hwio.KindOf(err) != hwio.InvalidWrite {
		t.Errorf("bad size: got %v, want InvalidWrite", err)
	}
	var b [1]byte
	if err := tm.Read(TrademarkBegin, b[:]); hwio.KindOf(err) != hwio.ProtectedRead {
		t.Errorf("read: got %v, want ProtectedRead", err)
	}
}

func TestZ80RAMMirrors(t *testing.T) {
	z := NewZ80RAM()

	if err := hwio.WriteByte(z, Z80RAMBegin+5, 0x77); err != nil {
		t.Fatal(err)
	}
	// the 8 KiB backing repeats across the 64 KiB window
	b, err := hwio.ReadByte(z, Z80RAMBegin+5+z80RAMSize)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x77 {
		t.Errorf("mirror read = %02x, want 77", b)
	}
}
