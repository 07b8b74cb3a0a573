package m68k

import (
	"megado/hw/hwio"
)

// testBus is a sparse 24-bit memory: absent bytes read as zero, word
// accesses to odd addresses fail like the real bus.
type testBus struct {
	mem map[uint32]uint8
}

func newTestBus() *testBus {
	return &testBus{mem: make(map[uint32]uint8)}
}

func (b *testBus) Read(addr uint32, p []byte) error {
	addr &= hwio.AddressMask
	if len(p) > 1 && addr&1 != 0 {
		return hwio.Errorf(hwio.UnalignedMemoryRead, "read address: %06x size: %x", addr, len(p))
	}
	for i := range p {
		p[i] = b.mem[(addr+uint32(i))&hwio.AddressMask]
	}
	return nil
}

func (b *testBus) Write(addr uint32, p []byte) error {
	addr &= hwio.AddressMask
	if len(p) > 1 && addr&1 != 0 {
		return hwio.Errorf(hwio.UnalignedMemoryWrite, "write address: %06x size: %x", addr, len(p))
	}
	for i := range p {
		b.mem[(addr+uint32(i))&hwio.AddressMask] = p[i]
	}
	return nil
}

func (b *testBus) loadWords(addr uint32, words ...uint16) {
	for _, w := range words {
		b.mem[addr] = uint8(w >> 8)
		b.mem[addr+1] = uint8(w)
		addr += 2
	}
}

func (b *testBus) loadBytes(addr uint32, bs ...uint8) {
	for i, v := range bs {
		b.mem[addr+uint32(i)] = v
	}
}

func (b *testBus) snapshot() map[uint32]uint8 {
	snap := make(map[uint32]uint8, len(b.mem))
	for k, v := range b.mem {
		if v != 0 {
			snap[k] = v
		}
	}
	return snap
}

// cpu bundles registers and a test bus for one test.
type cpu struct {
	regs Registers
	bus  *testBus
}

func newCPU() *cpu {
	return &cpu{bus: newTestBus()}
}

func (c *cpu) ctx() Context {
	return Context{Regs: &c.regs, Bus: c.bus}
}

// step decodes and executes one instruction.
func (c *cpu) step() error {
	inst, err := Decode(c.ctx())
	if err != nil {
		return err
	}
	return inst.Execute(c.ctx())
}
