package ccs811

import (
	"github.com/sirupsen/logrus"
)

// Phase names a stage of the firmware update.
type Phase string

const (
	PhaseReset    Phase = "reset"
	PhaseErase    Phase = "erase"
	PhaseWrite    Phase = "write"
	PhaseVerify   Phase = "verify"
	PhaseComplete Phase = "complete"
)

// Progress is passed to the ProgressFunc during Flash.
type Progress struct {
	Phase   Phase
	Written int
	Total   int
}

// ProgressFunc should return quickly, it is called between bus transactions.
type ProgressFunc func(Progress)

const opFlash = "flash"

// Flash replaces the application firmware with image. There is no rollback:
// when any step fails the CCS811 may be left without a valid application.
// Afterwards the CCS811 is in boot mode and Begin has to be called again.
func (d *Device) Flash(image []byte) error {
	if len(image) == 0 {
		return ErrorImageEmpty
	}

	err := d.awake(opFlash, func() error {
		return d.flash(image)
	})
	if err != nil {
		d.reportFailure(err, "Flash failed")
		return err
	}

	d.appVersion = 0
	d.compat = CompatDefault
	d.log.WithField("size", len(image)).Info("Flash complete")

	return nil
}

func (d *Device) reportProgress(phase Phase, written int, total int) {
	if d.progress != nil {
		d.progress(Progress{Phase: phase, Written: written, Total: total})
	}
}

func (d *Device) flash(image []byte) error {
	total := len(image)

	if err := d.ping(d.address); err != nil {
		return transportError(opFlash, "ping", regStatus, err)
	}

	d.reportProgress(PhaseReset, 0, total)
	if err := d.command(opFlash, "reset", regSWReset, swResetMagic...); err != nil {
		return err
	}
	d.sleep(waitAfterReset)

	status, err := d.readByte(opFlash, "boot status", regStatus)
	if err != nil {
		return err
	}
	switch status {
	case statusBootNoApp, statusBootValidApp:
	default:
		d.log.WithFields(logrus.Fields{
			"step":  "boot status",
			"value": status,
		}).Warn("Unexpected status before erase, continuing")
	}

	d.reportProgress(PhaseErase, 0, total)
	if err := d.command(opFlash, "erase", regAppErase, appEraseMagic...); err != nil {
		return err
	}
	d.sleep(waitAfterErase)

	if err := d.expectStatus(opFlash, "erase status", statusBootErased); err != nil {
		return err
	}

	for written := 0; written < total; {
		end := written + FlashChunkSize
		if end > total {
			end = total
		}

		if err := d.command(opFlash, "write", regAppData, image[written:end]...); err != nil {
			return err
		}
		d.sleep(waitAfterData)

		written = end
		d.reportProgress(PhaseWrite, written, total)
	}

	d.reportProgress(PhaseVerify, total, total)
	if err := d.command(opFlash, "verify", regAppVerify); err != nil {
		return err
	}
	d.sleep(waitAfterVerify)

	if err := d.expectStatus(opFlash, "verify status", statusBootVerified); err != nil {
		return err
	}

	if err := d.command(opFlash, "reset", regSWReset, swResetMagic...); err != nil {
		return err
	}
	d.sleep(waitAfterReset)

	if err := d.expectStatus(opFlash, "final status", statusBootValidApp); err != nil {
		return err
	}

	d.reportProgress(PhaseComplete, total, total)
	return nil
}
