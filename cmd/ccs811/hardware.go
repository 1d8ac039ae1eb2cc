package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/BertoldVdb/go-ccs811/ccs811"
	"github.com/BertoldVdb/go-ccs811/linux-pio/gpio"
	"github.com/BertoldVdb/go-ccs811/linux-pio/i2c"
	"github.com/BertoldVdb/go-ccs811/periphbus"
)

var (
	backend   = flag.String("backend", "linux", "Hardware access: 'linux' (i2c-dev, gpiochip) or 'periph'")
	busID     = flag.Int("bus", 1, "Linux I2C adapter number (/dev/i2c-N)")
	periphBus = flag.String("periph-bus", "", "periph.io I2C bus name, empty for the first bus")
	address   = flag.String("addr", "0x5A", "CCS811 slave address (0x5A or 0x5B)")
	gpioChip  = flag.Int("gpiochip", 0, "Linux GPIO chip number for nWAKE")
	wakeLine  = flag.String("wake", "", "nWAKE line: offset or name on -gpiochip (linux) or pin name (periph). Empty when nWAKE is tied to GND")
	i2cDelay  = flag.Duration("i2cdelay", 0, "Delay before each register read transaction (both backends apply it before the write, not at the repeated start)")
)

// hardware is the opened bus and optional wake pin.
type hardware struct {
	bus     ccs811.Bus
	wake    ccs811.Pin
	closers []io.Closer

	linuxBus *i2c.Bus
}

func (h *hardware) Close() error {
	var err error
	for i := len(h.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, h.closers[i].Close())
	}
	return err
}

func parseAddress(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid address %q", s)
	}
	if uint16(v) != ccs811.AddressLow && uint16(v) != ccs811.AddressHigh {
		return 0, fmt.Errorf("address 0x%02X is not a CCS811 address", v)
	}
	return uint16(v), nil
}

func openHardware() (*hardware, error) {
	switch *backend {
	case "linux":
		return openLinux()
	case "periph":
		return openPeriph()
	}
	return nil, fmt.Errorf("unknown backend %q", *backend)
}

func openLinux() (*hardware, error) {
	h := &hardware{}

	bus, err := i2c.OpenBus(*busID)
	if err != nil {
		return nil, errors.Wrap(err, "open i2c bus")
	}
	h.bus = bus
	h.linuxBus = bus
	h.closers = append(h.closers, bus)

	if *wakeLine == "" {
		return h, nil
	}

	chip, err := gpio.OpenChip(*gpioChip)
	if err != nil {
		h.Close()
		return nil, errors.Wrap(err, "open gpio chip")
	}
	h.closers = append(h.closers, chip)

	offset, err := lineOffset(chip, *wakeLine)
	if err != nil {
		h.Close()
		return nil, err
	}

	line, err := chip.OpenOutput("ccs811-nwake", offset, true)
	if err != nil {
		h.Close()
		return nil, errors.Wrapf(err, "request %s line %d", chip, offset)
	}
	h.wake = line
	h.closers = append(h.closers, line)

	return h, nil
}

func lineOffset(chip *gpio.Chip, s string) (uint32, error) {
	if v, err := strconv.ParseUint(s, 0, 32); err == nil {
		return uint32(v), nil
	}

	offset, err := chip.LineByName(s)
	if err != nil {
		return 0, errors.Wrapf(err, "line %q", s)
	}
	return offset, nil
}

func openPeriph() (*hardware, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "init periph host")
	}

	h := &hardware{}

	bus, err := i2creg.Open(*periphBus)
	if err != nil {
		return nil, errors.Wrap(err, "open i2c bus")
	}
	h.bus = periphbus.NewBus(bus)
	h.closers = append(h.closers, bus)

	if *wakeLine != "" {
		pin := gpioreg.ByName(*wakeLine)
		if pin == nil {
			h.Close()
			return nil, fmt.Errorf("unknown pin %q", *wakeLine)
		}
		h.wake = periphbus.NewPin(pin)
	}

	return h, nil
}
