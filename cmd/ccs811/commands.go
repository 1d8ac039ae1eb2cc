package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BertoldVdb/go-ccs811/baselinestore"
	"github.com/BertoldVdb/go-ccs811/ccs811"
	"github.com/BertoldVdb/go-ccs811/fwimage"
)

// HW_ID register, read by probe without going through the driver
const regHWID = 0x20

func runProbe(d *ccs811.Device, h *hardware, log *logrus.Entry, args []string) error {
	if h.linuxBus == nil {
		return errors.New("probe needs the linux backend")
	}

	found := false
	for _, addr := range []uint16{ccs811.AddressLow, ccs811.AddressHigh} {
		dev := h.linuxBus.GetDevice(addr)
		if err := dev.Ping(); err != nil {
			log.WithField("address", fmt.Sprintf("0x%02X", addr)).Debug("No answer")
			continue
		}

		id, err := dev.ReadReg8(regHWID)
		if err != nil {
			return err
		}
		fmt.Printf("0x%02X: HW_ID=0x%02X\n", dev.Address(), id)
		found = true
	}

	if !found {
		return errors.New("no device found")
	}
	return nil
}

func runInfo(d *ccs811.Device, h *hardware, log *logrus.Entry, args []string) error {
	if err := d.Begin(); err != nil {
		return err
	}

	hw, err := d.HardwareVersion()
	if err != nil {
		return err
	}
	boot, err := d.BootloaderVersion()
	if err != nil {
		return err
	}
	app, err := d.ApplicationVersion()
	if err != nil {
		return err
	}
	id, err := d.ErrorID()
	if err != nil {
		return err
	}

	fmt.Printf("address     0x%02X\n", d.Address())
	fmt.Printf("hardware    0x%02X\n", hw)
	fmt.Printf("bootloader  %s\n", boot)
	fmt.Printf("application %s (%s)\n", app, d.Compat())
	fmt.Printf("error id    0x%02X\n", id)
	return nil
}

type envFlags struct {
	temp *float64
	rh   *float64
}

func addEnvFlags(fs *flag.FlagSet) envFlags {
	return envFlags{
		temp: fs.Float64("temp", math.NaN(), "Ambient temperature in °C"),
		rh:   fs.Float64("rh", math.NaN(), "Relative humidity in %"),
	}
}

func (e envFlags) set() bool {
	return !math.IsNaN(*e.temp) && !math.IsNaN(*e.rh)
}

func (e envFlags) apply(d *ccs811.Device, log *logrus.Entry) error {
	t, h := ccs811.EnvDataFromCelsius(*e.temp, *e.rh)
	log.WithFields(logrus.Fields{
		"temp": *e.temp,
		"rh":   *e.rh,
	}).Debug("Writing compensation data")
	return d.SetEnvData(t, h)
}

func runEnv(d *ccs811.Device, h *hardware, log *logrus.Entry, args []string) error {
	fs := flag.NewFlagSet("env", flag.ExitOnError)
	env := addEnvFlags(fs)
	fs.Parse(args)

	if !env.set() {
		return errors.New("-temp and -rh are required")
	}
	if err := d.Begin(); err != nil {
		return err
	}
	return env.apply(d, log)
}

func runBaseline(d *ccs811.Device, h *hardware, log *logrus.Entry, args []string) error {
	if len(args) < 1 {
		return errors.New("baseline needs 'get' or 'set <value>'")
	}
	if err := d.Begin(); err != nil {
		return err
	}

	switch args[0] {
	case "get":
		baseline, err := d.GetBaseline()
		if err != nil {
			return err
		}
		fmt.Printf("0x%04X\n", baseline)
		return nil

	case "set":
		if len(args) != 2 {
			return errors.New("baseline set needs a value")
		}
		v, err := strconv.ParseUint(args[1], 0, 16)
		if err != nil {
			return err
		}
		return d.SetBaseline(uint16(v))
	}

	return fmt.Errorf("unknown baseline action %q", args[0])
}

func runRead(d *ccs811.Device, h *hardware, log *logrus.Entry, args []string) error {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	modeName := fs.String("mode", "1s", "Drive mode: 1s, 10s or 60s")
	count := fs.Int("count", 0, "Number of samples to print, 0 for no limit")
	baselineFile := fs.String("baseline", "", "File to save the baseline to and restore it from")
	warmup := fs.Duration("warmup", baselinestore.MinimumUptime, "Running time before a stored baseline is restored")
	saveInterval := fs.Duration("save-interval", time.Hour, "Minimum time between baseline saves")
	env := addEnvFlags(fs)
	fs.Parse(args)

	mode, err := ccs811.ParseMode(*modeName)
	if err != nil {
		return err
	}
	if mode == ccs811.ModeIdle {
		return errors.New("idle mode produces no samples")
	}

	store := &baselinestore.Store{
		Filename:     *baselineFile,
		SaveInterval: *saveInterval,
	}
	var stored *baselinestore.Record
	if *baselineFile != "" {
		r, err := store.Load()
		if err == nil {
			stored = &r
			log.WithFields(logrus.Fields{
				"baseline": fmt.Sprintf("0x%04X", r.Baseline),
				"captured": r.Captured.Format(time.RFC3339),
			}).Info("Loaded baseline")
		} else if !os.IsNotExist(err) {
			return err
		}
	}

	if err := d.Begin(); err != nil {
		return err
	}
	if err := d.SetMode(mode); err != nil {
		return err
	}
	if env.set() {
		if err := env.apply(d, log); err != nil {
			return err
		}
	}

	started := time.Now()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	// Poll faster than the drive mode so no sample is missed
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	printed := 0
	for *count == 0 || printed < *count {
		select {
		case <-stop:
			return saveBaseline(store, log)
		case <-ticker.C:
		}

		s, err := d.Read()
		if err != nil {
			log.WithError(err).WithField("errstat", s.ErrStat.String()).Warn("Read failed")
			continue
		}
		if !s.ErrStat.DataReady() {
			continue
		}

		fmt.Printf("eco2=%d ppm etvoc=%d ppb errstat=%04X=%s current=%duA voltage=%.3fV\n",
			s.ECO2, s.ETVOC, uint16(s.ErrStat), s.ErrStat, s.Current(), s.Voltage())
		printed++

		uptime := time.Since(started)
		if stored != nil && uptime >= *warmup {
			if err := d.SetBaseline(stored.Baseline); err != nil {
				return err
			}
			log.WithField("baseline", fmt.Sprintf("0x%04X", stored.Baseline)).Info("Restored baseline")
			stored = nil
		} else if stored == nil && *baselineFile != "" && uptime >= baselinestore.MinimumUptime {
			baseline, err := d.GetBaseline()
			if err != nil {
				return err
			}
			store.Update(baselinestore.Record{
				Baseline: baseline,
				Captured: time.Now(),
				Uptime:   uptime,
				Firmware: uint16(d.FirmwareVersion()),
			})
			if err := store.SaveConditional(); err != nil {
				log.WithError(err).Warn("Saving baseline failed")
			}
		}
	}

	return saveBaseline(store, log)
}

func saveBaseline(store *baselinestore.Store, log *logrus.Entry) error {
	r, ok := store.Record()
	if !ok || store.Filename == "" {
		return nil
	}
	if err := store.Save(); err != nil {
		return err
	}
	log.WithField("baseline", fmt.Sprintf("0x%04X", r.Baseline)).Info("Saved baseline")
	return nil
}

func runFlash(d *ccs811.Device, h *hardware, log *logrus.Entry, args []string) error {
	fs := flag.NewFlagSet("flash", flag.ExitOnError)
	imageFile := fs.String("image", "", "Firmware image (.bin or hex dump)")
	force := fs.Bool("force", false, "Flash images whose size is not a multiple of 8")
	fs.Parse(args)

	if *imageFile == "" {
		return errors.New("-image is required")
	}

	img, err := fwimage.Load(*imageFile)
	if err != nil {
		return err
	}
	if err := img.Validate(); err != nil {
		if !*force || err == fwimage.ErrorEmpty {
			return err
		}
		log.WithError(err).Warn("Flashing anyway")
	}

	session := log.WithFields(logrus.Fields{
		"session": uuid.New().String(),
		"image":   img.Name,
		"crc":     fmt.Sprintf("0x%02X", img.CRC()),
	})
	session.WithField("size", len(img.Data)).Info("Starting flash, do not power off the sensor")

	flasher, err := ccs811.New(h.bus,
		ccs811.WithAddress(d.Address()),
		ccs811.WithI2CDelay(d.I2CDelay()),
		ccs811.WithWakePin(h.wake),
		ccs811.WithLogger(session),
		ccs811.WithProgress(progressLogger(session, progressLogStep)))
	if err != nil {
		return err
	}

	if err := flasher.Flash(img.Data); err != nil {
		return err
	}

	if err := flasher.Begin(); err != nil {
		return err
	}
	session.WithField("app", flasher.FirmwareVersion().String()).Info("New firmware running")
	return nil
}

const progressLogStep = 512

// progressLogger logs every phase change and then at most once per step bytes.
func progressLogger(log *logrus.Entry, step int) ccs811.ProgressFunc {
	lastPhase := ccs811.Phase("")
	lastWritten := 0

	return func(p ccs811.Progress) {
		if p.Phase == lastPhase && p.Written-lastWritten < step && p.Written != p.Total {
			return
		}
		log.WithFields(logrus.Fields{
			"phase":   p.Phase,
			"written": p.Written,
			"total":   p.Total,
		}).Debug("Progress")
		lastPhase = p.Phase
		lastWritten = p.Written
	}
}
