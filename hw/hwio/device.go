// Package hwio models the 68000 side of the console: a 24-bit address space
// of memory-mapped devices exchanging big-endian bytes.
package hwio

// Device is anything mapped into the address space. Read fills p with
// len(p) bytes starting at addr; Write stores len(p) bytes at addr. Both
// see addresses already masked to 24 bits by the Bus.
type Device interface {
	Read(addr uint32, p []byte) error
	Write(addr uint32, p []byte) error
}

// Big-endian accessors. Multi-byte values cross the bus in big-endian order
// and are byte-swapped here, at the boundary; everything behind a Device
// stays host-native.

func ReadByte(d Device, addr uint32) (uint8, error) {
	var buf [1]byte
	if err := d.Read(addr, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func ReadWord(d Device, addr uint32) (uint16, error) {
	var buf [2]byte
	if err := d.Read(addr, buf[:]); err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

func ReadLong(d Device, addr uint32) (uint32, error) {
	var buf [4]byte
	if err := d.Read(addr, buf[:]); err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

func WriteByte(d Device, addr uint32, val uint8) error {
	buf := [1]byte{val}
	return d.Write(addr, buf[:])
}

func WriteWord(d Device, addr uint32, val uint16) error {
	buf := [2]byte{uint8(val >> 8), uint8(val)}
	return d.Write(addr, buf[:])
}

func WriteLong(d Device, addr uint32, val uint32) error {
	buf := [4]byte{uint8(val >> 24), uint8(val >> 16), uint8(val >> 8), uint8(val)}
	return d.Write(addr, buf[:])
}
