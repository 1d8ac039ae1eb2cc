package ccs811

import "math"

// Range of ENS210 temperatures (1/64 K) that map onto ENV_DATA (1/512 °C, offset -25 °C).
const (
	ens210TempMin = 15882 // (273.15 - 25) * 64, rounded up
	ens210TempMax = ens210TempMin + math.MaxUint16/8
)

// SetEnvData writes temperature and humidity compensation data. Both are in
// datasheet format: t is (°C + 25) * 512, h is %RH * 512.
func (d *Device) SetEnvData(t uint16, h uint16) error {
	const op = "set env data"
	payload := []byte{byte(h >> 8), byte(h), byte(t >> 8), byte(t)}
	return d.awake(op, func() error {
		return d.command(op, "env data", regEnvData, payload...)
	})
}

// SetEnvDataENS210 writes compensation data measured by an ENS210, whose
// humidity format matches ENV_DATA but whose temperature is in 1/64 K.
func (d *Device) SetEnvDataENS210(t uint16, h uint16) error {
	return d.SetEnvData(EnvTemperatureFromENS210(t), h)
}

// EnvTemperatureFromENS210 converts an ENS210 temperature to ENV_DATA format.
// Temperatures outside the representable range saturate.
func EnvTemperatureFromENS210(t uint16) uint16 {
	if t < ens210TempMin {
		return 0
	}
	if t > ens210TempMax {
		return math.MaxUint16
	}
	// +3 compensates the truncated fraction of the offset
	return (t-ens210TempMin)*8 + 3
}

// EnvDataFromCelsius encodes a temperature in °C and relative humidity in %.
func EnvDataFromCelsius(celsius float64, rh float64) (t uint16, h uint16) {
	return saturate16((celsius + 25) * 512), saturate16(rh * 512)
}

func saturate16(v float64) uint16 {
	v = math.Round(v)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}
