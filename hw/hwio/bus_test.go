package hwio

import (
	"testing"
)

type ramDev struct {
	base uint32
	data []byte
}

func (r *ramDev) Read(addr uint32, p []byte) error {
	copy(p, r.data[addr-r.base:])
	return nil
}

func (r *ramDev) Write(addr uint32, p []byte) error {
	copy(r.data[addr-r.base:], p)
	return nil
}

func TestBusRoutesToFirstMatch(t *testing.T) {
	bus := NewBus("test")
	first := &ramDev{base: 0x1000, data: make([]byte, 0x100)}
	second := &ramDev{base: 0x1000, data: make([]byte, 0x100)}
	bus.Map(0x1000, 0x10FF, first)
	bus.Map(0x1000, 0x10FF, second) // shadowed

	if err := WriteByte(bus, 0x1010, 0xAB); err != nil {
		t.Fatal(err)
	}
	if first.data[0x10] != 0xAB {
		t.Error("write should land in the first mapped device")
	}
	if second.data[0x10] != 0 {
		t.Error("shadowed device must not see the write")
	}
}

func TestBusMasksAddressTo24Bits(t *testing.T) {
	bus := NewBus("test")
	ram := &ramDev{base: 0xFF0000, data: make([]byte, 0x10000)}
	bus.Map(0xFF0000, 0xFFFFFF, ram)

	// bits above the 24 wired lines are ignored
	if err := WriteWord(bus, 0xABFF0000, 0x1234); err != nil {
		t.Fatal(err)
	}
	got, err := ReadWord(bus, 0xFF0000)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x1234 {
		t.Errorf("got %04x, want 1234", got)
	}
}

func TestBusWordRoundTrip(t *testing.T) {
	bus := NewBus("test")
	ram := &ramDev{base: 0xFF0000, data: make([]byte, 0x10000)}
	bus.Map(0xFF0000, 0xFFFFFF, ram)

	if err := WriteWord(bus, 0xFF0000, 0x1234); err != nil {
		t.Fatal(err)
	}
	word, err := ReadWord(bus, 0xFF0000)
	if err != nil {
		t.Fatal(err)
	}
	if word != 0x1234 {
		t.Errorf("word = %04x, want 1234", word)
	}
	// big-endian: the low byte lives at the odd address
	b, err := ReadByte(bus, 0xFF0001)
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x34 {
		t.Errorf("byte = %02x, want 34", b)
	}
}

func TestBusUnmappedAccess(t *testing.T) {
	bus := NewBus("test")

	var buf [2]byte
	if err := bus.Read(0x123456, buf[:]); KindOf(err) != UnmappedRead {
		t.Errorf("read: got %v, want UnmappedRead", err)
	}
	if err := bus.Write(0x123456, buf[:]); KindOf(err) != UnmappedWrite {
		t.Errorf("write: got %v, want UnmappedWrite", err)
	}
}

func TestBusUnalignedAccess(t *testing.T) {
	bus := NewBus("test")
	ram := &ramDev{base: 0, data: make([]byte, 0x100)}
	bus.Map(0x0000, 0x00FF, ram)

	var buf [2]byte
	if err := bus.Read(0x0001, buf[:]); KindOf(err) != UnalignedMemoryRead {
		t.Errorf("read: got %v, want UnalignedMemoryRead", err)
	}
	if err := bus.Write(0x0001, buf[:]); KindOf(err) != UnalignedMemoryWrite {
		t.Errorf("write: got %v, want UnalignedMemoryWrite", err)
	}
	// byte accesses to odd addresses are fine
	if _, err := ReadByte(bus, 0x0001); err != nil {
		t.Errorf("byte read: %v", err)
	}
}
