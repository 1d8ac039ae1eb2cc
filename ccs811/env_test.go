package ccs811

import (
	"math"
	"testing"
)

func TestEnvTemperatureFromENS210(t *testing.T) {
	tests := []struct {
		in   uint16
		want uint16
	}{
		{0, 0},
		{15881, 0},
		{15882, 3},
		{15883, 11},
		{24073, 65531},
		{24074, 65535},
		{65535, 65535},
	}

	for _, tc := range tests {
		if got := EnvTemperatureFromENS210(tc.in); got != tc.want {
			t.Errorf("EnvTemperatureFromENS210(%d) = %d, expected %d", tc.in, got, tc.want)
		}
	}
}

func TestEnvTemperatureFromENS210Monotonic(t *testing.T) {
	prev := EnvTemperatureFromENS210(0)
	for v := 1; v <= math.MaxUint16; v++ {
		cur := EnvTemperatureFromENS210(uint16(v))
		if cur < prev {
			t.Fatalf("Not monotonic at %d: %d < %d", v, cur, prev)
		}
		prev = cur
	}
}

func TestSetEnvData(t *testing.T) {
	bus := newFakeBus()
	d, _ := newTestDevice(bus)

	if err := d.SetEnvData(0x1234, 0x5678); err != nil {
		t.Fatal(err)
	}
	if err := d.SetEnvDataENS210(15883, 0x6400); err != nil {
		t.Fatal(err)
	}

	writes := bus.writesTo(regEnvData)
	if len(writes) != 2 {
		t.Fatal("Expected two writes", writes)
	}
	if string(writes[0]) != string([]byte{0x56, 0x78, 0x12, 0x34}) {
		t.Error("Wrong payload order", writes[0])
	}
	if string(writes[1]) != string([]byte{0x64, 0x00, 0x00, 0x0B}) {
		t.Error("Wrong converted payload", writes[1])
	}
}

func TestEnvDataFromCelsius(t *testing.T) {
	tests := []struct {
		celsius, rh float64
		t, h        uint16
	}{
		{25, 50, 25600, 25600},
		{-30, 120, 0, 61440},
		{200, -1, 65535, 0},
		{0, 0, 12800, 0},
	}

	for _, tc := range tests {
		tt, h := EnvDataFromCelsius(tc.celsius, tc.rh)
		if tt != tc.t || h != tc.h {
			t.Errorf("EnvDataFromCelsius(%v, %v) = %d, %d", tc.celsius, tc.rh, tt, h)
		}
	}
}
