package ccs811

import (
	"fmt"
)

// Version is a firmware version word: major in bits 15-12, minor in 11-8, trivial in 7-0.
type Version uint16

func (v Version) Major() int   { return int(v >> 12) }
func (v Version) Minor() int   { return int(v>>8) & 0x0F }
func (v Version) Trivial() int { return int(v) & 0xFF }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Trivial())
}

// ParseVersion parses "major.minor.trivial".
func ParseVersion(s string) (Version, error) {
	var major, minor, trivial int
	n, err := fmt.Sscanf(s, "%d.%d.%d", &major, &minor, &trivial)
	if err != nil || n != 3 {
		return 0, fmt.Errorf("invalid version %q", s)
	}
	if major < 0 || major > 15 || minor < 0 || minor > 15 || trivial < 0 || trivial > 255 {
		return 0, fmt.Errorf("version %q out of range", s)
	}
	return Version(major<<12 | minor<<8 | trivial), nil
}

// Compat selects how ALG_RESULT_DATA is decoded.
type Compat int

const (
	// CompatDefault trusts the STATUS byte inside ALG_RESULT_DATA.
	CompatDefault Compat = iota
	// CompatPre200 is for application firmware before 2.0.0, which puts a wrong
	// STATUS byte in ALG_RESULT_DATA. STATUS is read separately instead.
	CompatPre200
)

var version200 = Version(0x2000)

func compatFor(app Version) Compat {
	if app < version200 {
		return CompatPre200
	}
	return CompatDefault
}

func (c Compat) String() string {
	switch c {
	case CompatDefault:
		return "default"
	case CompatPre200:
		return "pre-2.0.0"
	}
	return fmt.Sprintf("Compat(%d)", int(c))
}

// HardwareVersion reads HW_VERSION.
func (d *Device) HardwareVersion() (uint8, error) {
	const op = "hardware version"
	var v byte
	err := d.awake(op, func() (err error) {
		v, err = d.readByte(op, "read", regHWVersion)
		return err
	})
	return v, err
}

// BootloaderVersion reads FW_BOOT_VERSION.
func (d *Device) BootloaderVersion() (Version, error) {
	return d.versionWord("bootloader version", regFWBootVersion)
}

// ApplicationVersion reads FW_APP_VERSION.
func (d *Device) ApplicationVersion() (Version, error) {
	return d.versionWord("application version", regFWAppVersion)
}

func (d *Device) versionWord(op string, reg byte) (Version, error) {
	var v uint16
	err := d.awake(op, func() (err error) {
		v, err = d.readWord(op, "read", reg)
		return err
	})
	return Version(v), err
}

// ErrorID reads ERROR_ID. Reading the register clears it in the CCS811.
func (d *Device) ErrorID() (uint8, error) {
	const op = "error id"
	var v byte
	err := d.awake(op, func() (err error) {
		v, err = d.readByte(op, "read", regErrorID)
		return err
	})
	return v, err
}
