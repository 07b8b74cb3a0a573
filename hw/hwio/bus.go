package hwio

import (
	"megado/emu/log"
)

// AddressMask keeps the 24 wired address lines; anything above is ignored
// by the address decoder.
const AddressMask = 0xFFFFFF

type mapping struct {
	begin, end uint32 // inclusive
	dev        Device
}

// Bus routes reads and writes to the first mapped device whose range
// contains the masked address. Mapping order is significant: devices are
// probed in insertion order.
type Bus struct {
	Name string

	mappings []mapping
}

func NewBus(name string) *Bus {
	return &Bus{Name: name}
}

// Map registers dev over the inclusive [begin, end] address range.
func (b *Bus) Map(begin, end uint32, dev Device) {
	log.ModMem.DebugZ("mapping device").
		String("bus", b.Name).
		Hex24("begin", begin).
		Hex24("end", end).
		End()
	b.mappings = append(b.mappings, mapping{begin: begin, end: end, dev: dev})
}

func (b *Bus) find(addr uint32) Device {
	for i := range b.mappings {
		if b.mappings[i].begin <= addr && addr <= b.mappings[i].end {
			return b.mappings[i].dev
		}
	}
	return nil
}

func (b *Bus) Read(addr uint32, p []byte) error {
	addr &= AddressMask
	if len(p) > 1 && addr&1 != 0 {
		return Errorf(UnalignedMemoryRead, "read address: %06x size: %x", addr, len(p))
	}
	if dev := b.find(addr); dev != nil {
		return dev.Read(addr, p)
	}
	return Errorf(UnmappedRead, "unmapped read address: %06x size: %x", addr, len(p))
}

func (b *Bus) Write(addr uint32, p []byte) error {
	addr &= AddressMask
	if len(p) > 1 && addr&1 != 0 {
		return Errorf(UnalignedMemoryWrite, "write address: %06x size: %x", addr, len(p))
	}
	if dev := b.find(addr); dev != nil {
		return dev.Write(addr, p)
	}
	return Errorf(UnmappedWrite, "unmapped write address: %06x size: %x", addr, len(p))
}
