package emu

import (
	"os"

	"megado/emu/log"
	"megado/hw/snapshot"
)

// SaveDumpToFile writes the VDP state for the diagnostic collaborator.
func (md *MegaDrive) SaveDumpToFile(path string) error {
	buf, err := md.VDP.DumpState().MarshalBinary()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return err
	}
	log.ModEmu.InfoZ("saved state dump").String("path", path).End()
	return nil
}

// ApplyDumpFromFile restores a VDP state dump.
func (md *MegaDrive) ApplyDumpFromFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var s snapshot.VDP
	if err := s.UnmarshalBinary(buf); err != nil {
		return err
	}
	md.VDP.ApplyState(&s)
	log.ModEmu.InfoZ("applied state dump").String("path", path).End()
	return nil
}
