package ccs811

import (
	"errors"
)

// Sample is the content of ALG_RESULT_DATA.
type Sample struct {
	ECO2    uint16 // ppm
	ETVOC   uint16 // ppb
	ErrStat ErrStat
	Raw     uint16
}

// Current returns the sensor current in µA from the raw data.
func (s Sample) Current() uint8 {
	return uint8(s.Raw >> 10)
}

// Voltage returns the sensor voltage in V from the raw data (1.65 V full scale).
func (s Sample) Voltage() float64 {
	return float64(s.Raw&0x3FF) * 1.65 / 1023
}

var errGarbled = errors.New("unused ERRSTAT bits set")

// Read fetches ALG_RESULT_DATA. The sample is always returned: when a
// transaction failed, ErrStat has ErrStatI2CFail set and the error tells which
// step failed. A read also clears the data ready flag, so calling Read and
// discarding the sample is a valid way to do just that.
func (d *Device) Read() (Sample, error) {
	const op = "read"

	var sample Sample
	var firstErr error
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	awakeErr := d.awake(op, func() error {
		var buf [8]byte
		if d.compat == CompatPre200 {
			// STATUS must be read before the result, which clears DATA_READY
			var status [1]byte
			if err := d.read(regStatus, status[:]); err != nil {
				fail(transportError(op, "status", regStatus, err))
			} else if err := d.read(regAlgResultData, buf[:]); err != nil {
				fail(transportError(op, "result", regAlgResultData, err))
			} else {
				buf[4] = status[0]
			}
		} else if err := d.read(regAlgResultData, buf[:]); err != nil {
			fail(transportError(op, "result", regAlgResultData, err))
		}

		stat := ErrStat(uint16(buf[5])<<8 | uint16(buf[4]))
		if stat&^(ErrStatHWErrors|ErrStatOK) != 0 {
			// Unused bits are 1: I2C transfer error
			fail(transportError(op, "errstat", regAlgResultData, errGarbled))
		}
		stat &= ErrStatHWErrors | ErrStatOK

		if stat&ErrStatHWErrors != 0 {
			// Clears ERROR_ID; only the transaction result matters here
			var id [1]byte
			if err := d.read(regErrorID, id[:]); err != nil {
				fail(transportError(op, "error id", regErrorID, err))
			}
		}

		sample.ECO2 = uint16(buf[0])<<8 | uint16(buf[1])
		sample.ETVOC = uint16(buf[2])<<8 | uint16(buf[3])
		sample.ErrStat = stat
		sample.Raw = uint16(buf[6])<<8 | uint16(buf[7])
		return nil
	})
	if awakeErr != nil {
		fail(awakeErr)
	}

	if firstErr != nil {
		sample.ErrStat |= ErrStatI2CFail
	}

	return sample, firstErr
}
