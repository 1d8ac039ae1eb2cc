// Package periphbus lets the ccs811 driver use periph.io buses and pins.
package periphbus

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// Bus wraps an i2c.Bus. periph.io issues a repeated start between the write
// and the read of a Tx, which is what the CCS811 register reads require.
type Bus struct {
	bus i2c.Bus
}

func NewBus(bus i2c.Bus) *Bus {
	return &Bus{bus: bus}
}

func (b *Bus) Write(addr uint16, w []byte) error {
	return b.bus.Tx(addr, w, nil)
}

func (b *Bus) Transfer(addr uint16, w []byte, r []byte) error {
	return b.bus.Tx(addr, w, r)
}

func (b *Bus) String() string {
	return b.bus.String()
}

// Pin wraps a gpio.PinOut used as nWAKE.
type Pin struct {
	pin gpio.PinOut
}

func NewPin(pin gpio.PinOut) *Pin {
	return &Pin{pin: pin}
}

func (p *Pin) SetValue(high bool) error {
	return p.pin.Out(gpio.Level(high))
}
