package rom

import (
	"fmt"
	"io"

	"github.com/go-faster/jx"
)

// PrintInfos writes a human-readable description of the rom header.
func (rom *Rom) PrintInfos(w io.Writer) {
	m := &rom.Metadata
	v := &rom.VectorTable
	fmt.Fprintf(w, "system type:    %s\n", m.SystemType)
	fmt.Fprintf(w, "copyright:      %s\n", m.Copyright)
	fmt.Fprintf(w, "domestic title: %s\n", m.DomesticTitle)
	fmt.Fprintf(w, "overseas title: %s\n", m.OverseasTitle)
	fmt.Fprintf(w, "serial number:  %s\n", m.SerialNumber)
	fmt.Fprintf(w, "checksum:       %04x\n", m.Checksum)
	fmt.Fprintf(w, "device support: %s\n", m.DeviceSupport)
	fmt.Fprintf(w, "rom range:      %06x-%06x\n", m.ROMRange.Begin, m.ROMRange.End)
	fmt.Fprintf(w, "ram range:      %06x-%06x\n", m.RAMRange.Begin, m.RAMRange.End)
	fmt.Fprintf(w, "region support: %s\n", m.RegionSupport)
	fmt.Fprintf(w, "reset pc:       %06x\n", v.ResetPC)
	fmt.Fprintf(w, "reset sp:       %06x\n", v.ResetSP)
	fmt.Fprintf(w, "vblank pc:      %06x\n", v.VBlankPC)
	fmt.Fprintf(w, "hblank pc:      %06x\n", v.HBlankPC)
}

// InfosJSON encodes the rom header for machine consumption.
func (rom *Rom) InfosJSON() []byte {
	m := &rom.Metadata
	v := &rom.VectorTable

	var e jx.Encoder
	e.ObjStart()

	e.FieldStart("metadata")
	e.ObjStart()
	for _, f := range []struct{ key, val string }{
		{"system_type", m.SystemType},
		{"copyright", m.Copyright},
		{"domestic_title", m.DomesticTitle},
		{"overseas_title", m.OverseasTitle},
		{"serial_number", m.SerialNumber},
		{"device_support", m.DeviceSupport},
		{"region_support", m.RegionSupport},
	} {
		e.FieldStart(f.key)
		e.Str(f.val)
	}
	e.FieldStart("checksum")
	e.UInt32(uint32(m.Checksum))
	for _, f := range []struct {
		key string
		rng AddressRange
	}{
		{"rom_range", m.ROMRange},
		{"ram_range", m.RAMRange},
	} {
		e.FieldStart(f.key)
		e.ObjStart()
		e.FieldStart("begin")
		e.UInt32(f.rng.Begin)
		e.FieldStart("end")
		e.UInt32(f.rng.End)
		e.ObjEnd()
	}
	e.ObjEnd()

	e.FieldStart("vectors")
	e.ObjStart()
	e.FieldStart("reset_sp")
	e.UInt32(v.ResetSP)
	e.FieldStart("reset_pc")
	e.UInt32(v.ResetPC)
	e.FieldStart("hblank_pc")
	e.UInt32(v.HBlankPC)
	e.FieldStart("vblank_pc")
	e.UInt32(v.VBlankPC)
	e.ObjEnd()

	e.ObjEnd()
	return e.Bytes()
}
