// Package rom implements a reader for headered Mega Drive cartridge
// images: a 256-byte exception vector table followed by 256 bytes of
// metadata, then the program itself.
package rom

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
)

// HeaderSize is the part of the image occupied by the vector table and
// the metadata block.
const HeaderSize = 512

// VectorTable carries the entries the emulator consumes. The full table
// holds 64 vectors; the rest are reachable through the raw image when the
// CPU indexes them directly.
type VectorTable struct {
	ResetSP  uint32
	ResetPC  uint32
	HBlankPC uint32
	VBlankPC uint32
}

// AddressRange is an inclusive range from the metadata block.
type AddressRange struct {
	Begin uint32
	End   uint32
}

// Metadata is the fixed-layout descriptive block at offset 0x100.
type Metadata struct {
	SystemType    string
	Copyright     string
	DomesticTitle string
	OverseasTitle string
	SerialNumber  string
	Checksum      uint16
	DeviceSupport string
	ROMRange      AddressRange
	RAMRange      AddressRange
	ExtraMemory   string
	ModemSupport  string
	RegionSupport string
}

type Rom struct {
	VectorTable VectorTable
	Metadata    Metadata

	// Data is the whole image, header included: the 68000 sees the
	// cartridge from address zero.
	Data []byte
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(Rom)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, err
	}
	return rom, nil
}

// ReadFrom implements the io.ReaderFrom interface.
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if len(buf) < HeaderSize {
		return 0, fmt.Errorf("image too small: %d bytes, header needs %d", len(buf), HeaderSize)
	}

	rom.Data = buf
	rom.VectorTable = decodeVectorTable(buf)
	rom.Metadata = decodeMetadata(buf[256:])
	return int64(len(buf)), nil
}

func decodeVectorTable(p []byte) VectorTable {
	be := binary.BigEndian
	return VectorTable{
		ResetSP:  be.Uint32(p[0x00:]),
		ResetPC:  be.Uint32(p[0x04:]),
		HBlankPC: be.Uint32(p[0x70:]),
		VBlankPC: be.Uint32(p[0x78:]),
	}
}

func decodeMetadata(p []byte) Metadata {
	be := binary.BigEndian
	str := func(off, n int) string {
		return strings.TrimRight(string(p[off:off+n]), " \x00")
	}
	rng := func(off int) AddressRange {
		return AddressRange{Begin: be.Uint32(p[off:]), End: be.Uint32(p[off+4:])}
	}
	return Metadata{
		SystemType:    str(0x00, 16),
		Copyright:     str(0x10, 16),
		DomesticTitle: str(0x20, 48),
		OverseasTitle: str(0x50, 48),
		SerialNumber:  str(0x80, 14),
		Checksum:      be.Uint16(p[0x8E:]),
		DeviceSupport: str(0x90, 16),
		ROMRange:      rng(0xA0),
		RAMRange:      rng(0xA8),
		ExtraMemory:   str(0xB0, 12),
		ModemSupport:  str(0xBC, 12),
		RegionSupport: str(0xF0, 3),
	}
}
