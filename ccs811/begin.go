package ccs811

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const opBegin = "begin"

// Begin resets the CCS811, checks its identity and switches it from boot mode
// to application mode. It either completes every step or fails at the first
// one that does not check out, without executing the remaining steps.
func (d *Device) Begin() error {
	err := d.awake(opBegin, d.begin)
	if err != nil {
		d.reportFailure(err, "Bring-up failed")
		return err
	}

	d.log.WithFields(logrus.Fields{
		"address": fmt.Sprintf("0x%02X", d.address),
		"app":     d.appVersion.String(),
	}).Debug("CCS811 in application mode")

	return nil
}

func (d *Device) begin() error {
	d.appVersion = 0
	d.compat = CompatDefault

	if err := d.pingWithFallback(); err != nil {
		return err
	}

	// Bring the CCS811 into a known state
	if err := d.command(opBegin, "reset", regSWReset, swResetMagic...); err != nil {
		return err
	}
	d.sleep(waitAfterReset)

	hwID, err := d.readByte(opBegin, "hw id", regHWID)
	if err != nil {
		return err
	}
	if hwID != expectedHWID {
		return mismatchError(opBegin, "hw id", regHWID, int(hwID), expectedHWID)
	}

	hwVersion, err := d.readByte(opBegin, "hw version", regHWVersion)
	if err != nil {
		return err
	}
	if hwVersion&expectedHWVersionMask != expectedHWVersion {
		return mismatchError(opBegin, "hw version", regHWVersion, int(hwVersion), expectedHWVersion)
	}

	// After reset the CCS811 must be in boot mode with a valid application
	if err := d.expectStatus(opBegin, "boot status", statusBootValidApp); err != nil {
		return err
	}

	appVersion, err := d.readWord(opBegin, "app version", regFWAppVersion)
	if err != nil {
		return err
	}

	if err := d.command(opBegin, "app start", regAppStart); err != nil {
		return err
	}
	d.sleep(waitAfterAppStart)

	if err := d.expectStatus(opBegin, "app status", statusAppMode); err != nil {
		return err
	}

	d.appVersion = Version(appVersion)
	d.compat = compatFor(d.appVersion)
	return nil
}

// pingWithFallback pings twice on the configured address. When both fail the
// other CCS811 address is tried, but only to give a better diagnostic.
func (d *Device) pingWithFallback() error {
	err := d.ping(d.address)
	if err == nil {
		return nil
	}

	err = d.ping(d.address)
	if err == nil {
		return nil
	}

	other := OtherAddress(d.address)
	if other != 0 && d.ping(other) == nil {
		return transportError(opBegin, "ping", regStatus,
			fmt.Errorf("no answer on 0x%02X but device found on 0x%02X, wrong slave address", d.address, other))
	}

	return transportError(opBegin, "ping", regStatus, err)
}
