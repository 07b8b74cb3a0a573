// Package snapshot holds the serializable state of the video hardware.
// The wire layout is a flat byte array: register bank, VRAM, VSRAM, CRAM,
// in that order.
package snapshot

import "fmt"

type VDP struct {
	Registers [24]uint8
	VRAM      [65536]uint8
	VSRAM     [80]uint8
	CRAM      [128]uint8
}

// Size is the encoded length of a VDP snapshot.
const Size = 24 + 65536 + 80 + 128

func (s *VDP) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, Size)
	buf = append(buf, s.Registers[:]...)
	buf = append(buf, s.VRAM[:]...)
	buf = append(buf, s.VSRAM[:]...)
	buf = append(buf, s.CRAM[:]...)
	return buf, nil
}

func (s *VDP) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("bad VDP state size: %d, want %d", len(data), Size)
	}
	data = data[copy(s.Registers[:], data):]
	data = data[copy(s.VRAM[:], data):]
	data = data[copy(s.VSRAM[:], data):]
	copy(s.CRAM[:], data)
	return nil
}
