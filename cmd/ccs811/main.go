// Command ccs811 reads, configures and reflashes a CCS811 gas sensor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/BertoldVdb/go-ccs811/ccs811"
	"github.com/BertoldVdb/go-ccs811/logrusconfig"
)

type command struct {
	name  string
	usage string
	run   func(d *ccs811.Device, h *hardware, log *logrus.Entry, args []string) error
}

var commands = []command{
	{"probe", "probe: look for a CCS811 on both addresses (linux backend)", runProbe},
	{"info", "info: bring up the sensor and print its versions", runInfo},
	{"read", "read [-mode 1s] [-count n] [-baseline file] [-temp C -rh %]: print samples", runRead},
	{"env", "env -temp C -rh %: write compensation data", runEnv},
	{"baseline", "baseline get | set <value>: access the baseline register", runBaseline},
	{"flash", "flash -image file: replace the application firmware", runFlash},
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <command> [command flags]\n\nCommands:\n", os.Args[0])
	for _, c := range commands {
		fmt.Fprintf(flag.CommandLine.Output(), "  %s\n", c.usage)
	}
	fmt.Fprintf(flag.CommandLine.Output(), "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	logrusconfig.InitParam()
	flag.Usage = usage
	flag.Parse()

	log := logrusconfig.GetPrefixedLogger(logrus.InfoLevel, "ccs811")

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	if err := run(log, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

func run(log *logrus.Entry, name string, args []string) error {
	var cmd *command
	for i := range commands {
		if commands[i].name == name {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		return fmt.Errorf("unknown command %q", name)
	}

	addr, err := parseAddress(*address)
	if err != nil {
		return err
	}

	h, err := openHardware()
	if err != nil {
		return err
	}
	defer func() {
		if err := h.Close(); err != nil {
			log.WithError(err).Warn("Closing hardware failed")
		}
	}()

	opts := []ccs811.Option{
		ccs811.WithAddress(addr),
		ccs811.WithI2CDelay(*i2cDelay),
		ccs811.WithLogger(log),
	}
	if h.wake != nil {
		opts = append(opts, ccs811.WithWakePin(h.wake))
	}

	d, err := ccs811.New(h.bus, opts...)
	if err != nil {
		return err
	}

	return cmd.run(d, h, log, args)
}
