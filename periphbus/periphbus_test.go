package periphbus

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"

	"github.com/BertoldVdb/go-ccs811/ccs811"
)

func TestBaselineThroughPeriph(t *testing.T) {
	playback := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x5B, W: []byte{0x11, 0x84, 0x7B}},
			{Addr: 0x5B, W: []byte{0x11}, R: []byte{0x84, 0x7B}},
		},
	}
	pin := &gpiotest.Pin{N: "wake", L: gpio.Low}

	d, err := ccs811.New(NewBus(playback),
		ccs811.WithAddress(ccs811.AddressHigh),
		ccs811.WithWakePin(NewPin(pin)),
		ccs811.WithSleep(func(time.Duration) {}))
	if err != nil {
		t.Fatal(err)
	}
	if pin.L != gpio.High {
		t.Error("Wake pin not released at construction")
	}

	if err := d.SetBaseline(0x847B); err != nil {
		t.Fatal(err)
	}
	baseline, err := d.GetBaseline()
	if err != nil {
		t.Fatal(err)
	}
	if baseline != 0x847B {
		t.Errorf("Baseline 0x%04X", baseline)
	}
	if pin.L != gpio.High {
		t.Error("Wake pin left asserted")
	}

	if err := playback.Close(); err != nil {
		t.Error(err)
	}
}

func TestTransferFailure(t *testing.T) {
	playback := &i2ctest.Playback{DontPanic: true}
	d, err := ccs811.New(NewBus(playback), ccs811.WithSleep(func(time.Duration) {}))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := d.HardwareVersion(); err == nil {
		t.Error("Unexpected transaction succeeded")
	}
}

func TestI2CDelayBeforeTransaction(t *testing.T) {
	playback := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x5A, W: []byte{0x21}, R: []byte{0x12}},
		},
	}
	bus := NewBus(playback)
	if _, ok := interface{}(bus).(ccs811.DelayedTransferer); ok {
		t.Fatal("Bus cannot pause between write and read phase")
	}

	var delays []time.Duration
	d, err := ccs811.New(bus,
		ccs811.WithI2CDelay(20*time.Microsecond),
		ccs811.WithSleep(func(d time.Duration) { delays = append(delays, d) }))
	if err != nil {
		t.Fatal(err)
	}

	v, err := d.HardwareVersion()
	if err != nil || v != 0x12 {
		t.Fatal("HardwareVersion failed", v, err)
	}
	if len(delays) == 0 || delays[len(delays)-1] != 20*time.Microsecond {
		t.Error("Delay not applied before the transaction", delays)
	}
	if err := playback.Close(); err != nil {
		t.Error(err)
	}
}
