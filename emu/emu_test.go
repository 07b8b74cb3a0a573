package emu

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"
	"time"

	"megado/hw/hwio"
	"megado/rom"
)

const (
	testResetSP  = 0x00FF2000
	testResetPC  = 0x00000200
	testVBlankPC = 0x00000400
)

// buildTestRom synthesizes a rom whose reset and vblank entry points are
// filled with NOPs.
func buildTestRom(t *testing.T) *rom.Rom {
	t.Helper()
	img := make([]byte, 0x1000)
	be := binary.BigEndian

	be.PutUint32(img[0x00:], testResetSP)
	be.PutUint32(img[0x04:], testResetPC)
	be.PutUint32(img[0x78:], testVBlankPC)

	meta := img[256:]
	copy(meta[0x00:], "SEGA MEGA DRIVE")
	be.PutUint32(meta[0xA0:], 0x000000)
	be.PutUint32(meta[0xA4:], 0x000FFF)

	// NOP sleds at the reset and vblank entry points
	for off := testResetPC; off < testResetPC+0x100; off += 2 {
		be.PutUint16(img[off:], 0x4E71)
	}
	for off := testVBlankPC; off < testVBlankPC+0x10; off += 2 {
		be.PutUint16(img[off:], 0x4E71)
	}

	r := new(rom.Rom)
	if _, err := r.ReadFrom(bytes.NewReader(img)); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestPowerUpInitializesCPU(t *testing.T) {
	md, err := PowerUp(buildTestRom(t))
	if err != nil {
		t.Fatal(err)
	}
	if md.Regs.PC != testResetPC {
		t.Errorf("PC = %06x, want %06x", md.Regs.PC, uint32(testResetPC))
	}
	if md.Regs.USP != testResetSP {
		t.Errorf("USP = %08x, want %08x", md.Regs.USP, uint32(testResetSP))
	}
}

func TestStepExecutesInstructions(t *testing.T) {
	md, err := PowerUp(buildTestRom(t))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		res, err := md.Step()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if res != Executed {
			t.Fatalf("step %d: got %v, want Executed", i, res)
		}
	}
	if md.Regs.PC != testResetPC+6 {
		t.Errorf("PC = %06x, want %06x", md.Regs.PC, uint32(testResetPC+6))
	}
}

func TestVBlankPacing(t *testing.T) {
	md, err := PowerUp(buildTestRom(t))
	if err != nil {
		t.Fatal(err)
	}

	now := time.Unix(1000, 0)
	md.vblank.now = func() time.Time { return now }
	md.vblank.ResetTime()

	// enable the vblank interrupt in VDP mode register 2
	if err := hwio.WriteWord(md.Bus, 0xC00004, 0x8160); err != nil {
		t.Fatal(err)
	}

	// the frame period has not elapsed: instructions execute
	res, err := md.Step()
	if err != nil {
		t.Fatal(err)
	}
	if res != Executed {
		t.Fatalf("got %v, want Executed before the frame period", res)
	}

	oldPC := md.Regs.PC
	oldSR := md.Regs.SR

	// one frame later the interrupt fires exactly once
	now = now.Add(17 * time.Millisecond)
	res, err = md.Step()
	if err != nil {
		t.Fatal(err)
	}
	if res != VBlankInterrupt {
		t.Fatalf("got %v, want VBlankInterrupt", res)
	}
	if md.Regs.PC != testVBlankPC {
		t.Errorf("PC = %06x, want %06x", md.Regs.PC, uint32(testVBlankPC))
	}
	if !md.Regs.SR.Supervisor() {
		t.Error("vblank must enter supervisor state")
	}
	if md.Regs.SR.InterruptMask() != 6 {
		t.Errorf("interrupt mask = %d, want 6", md.Regs.SR.InterruptMask())
	}

	// the exception frame: SR on top of the supervisor stack, PC below
	pushedSR, err := hwio.ReadWord(md.Bus, md.Regs.SSP)
	if err != nil {
		t.Fatal(err)
	}
	pushedPC, err := hwio.ReadLong(md.Bus, md.Regs.SSP+2)
	if err != nil {
		t.Fatal(err)
	}
	if pushedPC != oldPC {
		t.Errorf("pushed PC = %06x, want %06x", pushedPC, oldPC)
	}
	wantSR := oldSR
	wantSR.SetSupervisor(true)
	if pushedSR != uint16(wantSR) {
		t.Errorf("pushed SR = %04x, want %04x", pushedSR, uint16(wantSR))
	}

	// the next step goes back to executing: missed frames are not queued
	res, err = md.Step()
	if err != nil {
		t.Fatal(err)
	}
	if res != Executed {
		t.Fatalf("got %v, want Executed right after the interrupt", res)
	}

	// with the mask at level 6 further vblanks are suppressed
	now = now.Add(17 * time.Millisecond)
	if res, _ = md.Step(); res != Executed {
		t.Fatal("vblank must be suppressed while SR.I >= 6")
	}

	// lowering the mask lets the next frame through
	md.Regs.SR.SetInterruptMask(0)
	now = now.Add(17 * time.Millisecond)
	if res, _ = md.Step(); res != VBlankInterrupt {
		t.Fatal("vblank should fire again once the mask is lowered")
	}
}

func TestVBlankGameSpeed(t *testing.T) {
	md, err := PowerUp(buildTestRom(t))
	if err != nil {
		t.Fatal(err)
	}

	now := time.Unix(1000, 0)
	md.vblank.now = func() time.Time { return now }
	md.vblank.ResetTime()
	md.SetGameSpeed(0.5) // half speed: frames are twice as long

	if err := hwio.WriteWord(md.Bus, 0xC00004, 0x8160); err != nil {
		t.Fatal(err)
	}

	now = now.Add(17 * time.Millisecond)
	if res, _ := md.Step(); res != Executed {
		t.Fatal("at half speed one NTSC frame must not be enough")
	}
	now = now.Add(17 * time.Millisecond)
	if res, _ := md.Step(); res != VBlankInterrupt {
		t.Fatal("two NTSC frames should trigger the half-speed vblank")
	}
}

func TestStateDumpFileRoundTrip(t *testing.T) {
	md, err := PowerUp(buildTestRom(t))
	if err != nil {
		t.Fatal(err)
	}

	// put something recognizable in VRAM through the data port
	if err := hwio.WriteWord(md.Bus, 0xC00004, 0x8F02); err != nil {
		t.Fatal(err)
	}
	for _, w := range []uint16{0x4000, 0x0000, 0xCAFE} {
		port := uint32(0xC00004)
		if w == 0xCAFE {
			port = 0xC00000
		}
		if err := hwio.WriteWord(md.Bus, port, w); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "state.dump")
	if err := md.SaveDumpToFile(path); err != nil {
		t.Fatal(err)
	}

	other, err := PowerUp(buildTestRom(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := other.ApplyDumpFromFile(path); err != nil {
		t.Fatal(err)
	}
	if other.VDP.VRAM()[0] != 0xCA || other.VDP.VRAM()[1] != 0xFE {
		t.Errorf("VRAM after apply = %02x%02x, want cafe", other.VDP.VRAM()[0], other.VDP.VRAM()[1])
	}
}

func TestInstructionInfoLeavesStateIntact(t *testing.T) {
	md, err := PowerUp(buildTestRom(t))
	if err != nil {
		t.Fatal(err)
	}

	info, err := md.InstructionInfo()
	if err != nil {
		t.Fatal(err)
	}
	if info.PC != testResetPC {
		t.Errorf("info PC = %06x, want %06x", info.PC, uint32(testResetPC))
	}
	if info.Text != "NOP" {
		t.Errorf("info text = %q, want NOP", info.Text)
	}
	if len(info.Bytes) != 2 {
		t.Errorf("info bytes = %d, want 2", len(info.Bytes))
	}
	if md.Regs.PC != testResetPC {
		t.Error("InstructionInfo must not advance PC")
	}
}
