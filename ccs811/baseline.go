package ccs811

// GetBaseline reads the encoded BASELINE register. Only save it after the
// sensor has been running for at least 20 minutes.
func (d *Device) GetBaseline() (uint16, error) {
	const op = "get baseline"
	var baseline uint16
	err := d.awake(op, func() (err error) {
		baseline, err = d.readWord(op, "read", regBaseline)
		return err
	})
	return baseline, err
}

// SetBaseline restores a value obtained from GetBaseline. Write it only after
// the sensor has warmed up.
func (d *Device) SetBaseline(baseline uint16) error {
	const op = "set baseline"
	return d.awake(op, func() error {
		return d.command(op, "write", regBaseline, byte(baseline>>8), byte(baseline))
	})
}

// SetThresholds configures the eCO2 thresholds (ppm) used by the threshold interrupt.
func (d *Device) SetThresholds(lowToMedium uint16, mediumToHigh uint16, hysteresis uint8) error {
	const op = "set thresholds"
	payload := []byte{
		byte(lowToMedium >> 8), byte(lowToMedium),
		byte(mediumToHigh >> 8), byte(mediumToHigh),
		hysteresis,
	}
	return d.awake(op, func() error {
		return d.command(op, "write", regThresholds, payload...)
	})
}
