package hw

import (
	"megado/emu/log"
	"megado/hw/hwio"
)

const (
	ControllerBegin = 0xA10001
	ControllerEnd   = 0xA1001F
)

// Register addresses inside the controller window. Even addresses are
// padding: they read as zero, and writes to them are rejected.
const (
	ctrlVersion = 0xA10001

	ctrlData1   = 0xA10003
	ctrlData2   = 0xA10005
	ctrlDataExt = 0xA10007

	ctrlCtrl1   = 0xA10009
	ctrlCtrl2   = 0xA1000B
	ctrlCtrlExt = 0xA1000D

	ctrlSerialControl1   = 0xA10013
	ctrlSerialControl2   = 0xA10019
	ctrlSerialControlExt = 0xA1001F
)

// Button is one of the eight 3-button-pad inputs.
type Button uint8

//go:generate go tool stringer -type=Button

const (
	Up Button = iota
	Down
	Left
	Right
	A
	B
	C
	Start

	buttonCount
)

// ButtonByName resolves a config-file button name.
func ButtonByName(name string) (Button, bool) {
	for b := Up; b < buttonCount; b++ {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

const controllerCount = 3 // pad 1, pad 2, extension port

type padStep uint8

const (
	padStep1 padStep = iota
	padStep2
)

// Controller implements the three joypad ports. Each pad reads back its
// chord through a two-step select machine: a write of 0x40 to the data
// port selects step 1 (directions plus B/C), anything else selects step 2
// (directions plus A/Start). Bits are active-low.
type Controller struct {
	pressed  [controllerCount][buttonCount]bool
	step     [controllerCount]padStep
	ctrlVals [controllerCount]uint8
}

func NewController() *Controller {
	return &Controller{}
}

// SetButton records the chord state for one pad. There is no timing
// dependency between this and reads.
func (c *Controller) SetButton(controller int, button Button, pressed bool) {
	c.pressed[controller][button] = pressed
	log.ModInput.DebugZ("button").
		Int("pad", int64(controller)).
		String("button", button.String()).
		Bool("pressed", pressed).
		End()
}

func (c *Controller) Read(addr uint32, p []byte) error {
	for i := range p {
		switch addr + uint32(i) {
		case ctrlVersion:
			p[i] = c.readVersion()
		case ctrlData1:
			p[i] = c.readPressed(0)
		case ctrlData2:
			p[i] = c.readPressed(1)
		case ctrlDataExt:
			p[i] = c.readPressed(2)
		case ctrlCtrl1:
			p[i] = c.ctrlVals[0]
		case ctrlCtrl2:
			p[i] = c.ctrlVals[1]
		case ctrlCtrlExt:
			p[i] = c.ctrlVals[2]
		default:
			p[i] = 0x00
		}
	}
	return nil
}

func (c *Controller) Write(addr uint32, p []byte) error {
	for i := range p {
		value := p[i]
		switch addr + uint32(i) {
		case ctrlData1:
			c.setStep(0, value)
		case ctrlData2:
			c.setStep(1, value)
		case ctrlDataExt:
			c.setStep(2, value)
		case ctrlCtrl1:
			c.ctrlVals[0] = value
		case ctrlCtrl2:
			c.ctrlVals[1] = value
		case ctrlCtrlExt:
			c.ctrlVals[2] = value
		case ctrlSerialControl1, ctrlSerialControl2, ctrlSerialControlExt:
			// serial registers, no-op
		default:
			return hwio.Errorf(hwio.InvalidWrite,
				"invalid controller write address: %06x data: %02x", addr+uint32(i), value)
		}
	}
	return nil
}

func (c *Controller) setStep(controller int, value uint8) {
	if value == 0x40 {
		c.step[controller] = padStep1
	} else {
		c.step[controller] = padStep2
	}
}

// readVersion reports a fixed vendor byte: version 0xF, no expansion unit,
// NTSC clock, overseas model.
func (c *Controller) readVersion() uint8 {
	const version = 0x0F | 1<<5 | 0<<6 | 1<<7
	log.ModInput.DebugZ("read version").Hex8("val", version).End()
	return version
}

func (c *Controller) readPressed(controller int) uint8 {
	pressed := &c.pressed[controller]

	// active-low: a set bit means released
	bit := func(b Button, pos uint8) uint8 {
		if pressed[b] {
			return 0
		}
		return 1 << pos
	}

	switch c.step[controller] {
	case padStep1:
		return bit(Up, 0) | bit(Down, 1) | bit(Left, 2) | bit(Right, 3) | bit(B, 4) | bit(C, 5)
	default:
		return bit(Up, 0) | bit(Down, 1) | bit(A, 4) | bit(Start, 5)
	}
}
