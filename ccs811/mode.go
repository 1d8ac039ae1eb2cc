package ccs811

import (
	"fmt"
	"strings"
)

// Mode is the drive mode written to MEAS_MODE.
type Mode uint8

const (
	ModeIdle  Mode = 0
	Mode1Sec  Mode = 1
	Mode10Sec Mode = 2
	Mode60Sec Mode = 3
)

var modeNames = []string{"idle", "1s", "10s", "60s"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode accepts the names returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return ModeIdle, fmt.Errorf("unknown mode %q", s)
}

// SetMode writes mode to MEAS_MODE. Values outside the defined modes are
// written as-is; the CCS811 flags them with ErrStatMeasModeInvalid.
func (d *Device) SetMode(mode Mode) error {
	const op = "set mode"
	return d.awake(op, func() error {
		return d.command(op, "meas mode", regMeasMode, byte(mode<<4))
	})
}
