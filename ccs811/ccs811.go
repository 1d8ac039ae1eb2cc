package ccs811

import (
	"errors"
	"io/ioutil"
	"time"

	"github.com/sirupsen/logrus"
)

// Bus is the two-wire transport the device is attached to.
type Bus interface {
	// Write sends START, address, w and STOP.
	Write(addr uint16, w []byte) error
	// Transfer sends START, address, w, then a repeated START and reads len(r) bytes.
	// It fails unless exactly len(r) bytes were received.
	Transfer(addr uint16, w []byte, r []byte) error
}

// DelayedTransferer is implemented by buses that can pause between the write
// phase and the repeated start of a Transfer.
type DelayedTransferer interface {
	TransferDelayed(addr uint16, w []byte, delay time.Duration, r []byte) error
}

// Pin is the digital output connected to nWAKE. Low enables the I2C interface.
type Pin interface {
	SetValue(high bool) error
}

// Device is one CCS811 on a bus.
type Device struct {
	bus      Bus
	address  uint16
	wake     Pin
	i2cDelay time.Duration

	appVersion Version
	compat     Compat

	log      *logrus.Entry
	sleep    func(time.Duration)
	progress ProgressFunc
}

// Option configures a Device.
type Option func(*Device)

// WithAddress selects the slave address, AddressLow by default.
func WithAddress(address uint16) Option {
	return func(d *Device) {
		d.address = address
	}
}

// WithWakePin sets the nWAKE output. Without it nWAKE is assumed tied to GND.
func WithWakePin(pin Pin) Option {
	return func(d *Device) {
		d.wake = pin
	}
}

// WithI2CDelay sets the delay before the repeated start of a register read.
// Some hosts do not handle clock stretching correctly and need this. Buses
// that do not implement DelayedTransferer, such as linux-pio/i2c and
// periphbus, get the delay before the whole write/read transaction instead.
func WithI2CDelay(delay time.Duration) Option {
	return func(d *Device) {
		d.SetI2CDelay(delay)
	}
}

// WithLogger sets the logger receiving diagnostics. By default nothing is logged.
func WithLogger(log *logrus.Entry) Option {
	return func(d *Device) {
		if log != nil {
			d.log = log
		}
	}
}

// WithSleep replaces time.Sleep for the delays of the timing table.
func WithSleep(sleep func(time.Duration)) Option {
	return func(d *Device) {
		if sleep != nil {
			d.sleep = sleep
		}
	}
}

// WithProgress installs a callback reporting Flash progress.
func WithProgress(progress ProgressFunc) Option {
	return func(d *Device) {
		d.progress = progress
	}
}

func discardLogger() *logrus.Entry {
	logger := logrus.New()
	logger.Out = ioutil.Discard
	return logrus.NewEntry(logger)
}

// New creates a Device. The wake pin, if any, is driven high (sleep).
func New(bus Bus, opts ...Option) (*Device, error) {
	if bus == nil {
		return nil, errors.New("ccs811: bus cannot be nil")
	}

	d := &Device{
		bus:     bus,
		address: AddressLow,
		log:     discardLogger(),
		sleep:   time.Sleep,
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.wake != nil {
		if err := d.wake.SetValue(true); err != nil {
			return nil, transportError("new", "init wake pin", 0, err)
		}
	}

	return d, nil
}

func (d *Device) Address() uint16 {
	return d.address
}

// SetI2CDelay changes the pre-read delay. Negative values are treated as zero.
func (d *Device) SetI2CDelay(delay time.Duration) {
	if delay < 0 {
		delay = 0
	}
	d.i2cDelay = delay
}

func (d *Device) I2CDelay() time.Duration {
	return d.i2cDelay
}

// FirmwareVersion is the application version cached by Begin.
func (d *Device) FirmwareVersion() Version {
	return d.appVersion
}

// Compat returns the result decoding mode chosen by Begin.
func (d *Device) Compat() Compat {
	return d.compat
}

// OtherAddress returns the alternative slave address, or 0 when address is not a CCS811 address.
func OtherAddress(address uint16) uint16 {
	switch address {
	case AddressLow:
		return AddressHigh
	case AddressHigh:
		return AddressLow
	}
	return 0
}

// awake runs fn with nWAKE asserted.
func (d *Device) awake(op string, fn func() error) error {
	if d.wake == nil {
		return fn()
	}

	if err := d.wake.SetValue(false); err != nil {
		return transportError(op, "wake", 0, err)
	}
	d.sleep(waitAfterWake)

	err := fn()

	if werr := d.wake.SetValue(true); werr != nil {
		d.log.WithError(werr).Warn("Failed to release nWAKE")
		if err == nil {
			err = transportError(op, "sleep", 0, werr)
		}
	}

	return err
}

func (d *Device) write(reg byte, payload ...byte) error {
	buf := make([]byte, 1+len(payload))
	buf[0] = reg
	copy(buf[1:], payload)

	return d.bus.Write(d.address, buf)
}

func (d *Device) read(reg byte, buf []byte) error {
	w := []byte{reg}

	if d.i2cDelay > 0 {
		if dt, ok := d.bus.(DelayedTransferer); ok {
			return dt.TransferDelayed(d.address, w, d.i2cDelay, buf)
		}
		// The bus cannot hold SCL between the phases; delay before the whole transfer instead.
		d.sleep(d.i2cDelay)
	}

	return d.bus.Transfer(d.address, w, buf)
}

func (d *Device) ping(address uint16) error {
	return d.bus.Write(address, []byte{regStatus})
}

func (d *Device) readByte(op string, step string, reg byte) (byte, error) {
	var buf [1]byte
	if err := d.read(reg, buf[:]); err != nil {
		return 0, transportError(op, step, reg, err)
	}
	return buf[0], nil
}

func (d *Device) readWord(op string, step string, reg byte) (uint16, error) {
	var buf [2]byte
	if err := d.read(reg, buf[:]); err != nil {
		return 0, transportError(op, step, reg, err)
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

func (d *Device) command(op string, step string, reg byte, payload ...byte) error {
	if err := d.write(reg, payload...); err != nil {
		return transportError(op, step, reg, err)
	}
	return nil
}

func (d *Device) expectStatus(op string, step string, want byte) error {
	status, err := d.readByte(op, step, regStatus)
	if err != nil {
		return err
	}
	if status != want {
		return mismatchError(op, step, regStatus, int(status), int(want))
	}
	return nil
}

func (d *Device) reportFailure(err error, msg string) {
	var serr *StepError
	if errors.As(err, &serr) {
		d.log.WithFields(serr.Fields()).WithError(err).Error(msg)
		return
	}
	d.log.WithError(err).Error(msg)
}
