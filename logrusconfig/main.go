package logrusconfig

import (
	"flag"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"
)

var (
	loglevel *int
	logplain *bool
)

// InitParam registers the logging flags. Call it before flag.Parse.
func InitParam() {
	loglevel = flag.Int("loglevel", int(logrus.InfoLevel), "The loglevel to use. Valid values are from 0 to 6. Higher values output more information")
	logplain = flag.Bool("logplain", false, "Disable colors and padding in the log output")
}

func GetLogger(level logrus.Level) *logrus.Entry {
	logrus.ErrorKey = "$error"
	logger := logrus.New()
	if loglevel == nil {
		logger.SetLevel(level)
	} else {
		logger.SetLevel(logrus.Level(*loglevel))
	}
	customFormatter := new(prefixed.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	if logplain != nil && *logplain {
		customFormatter.DisableColors = true
	} else {
		customFormatter.PrefixPadding = 20
		customFormatter.SpacePadding = 50
	}
	logger.SetFormatter(customFormatter)
	return logrus.NewEntry(logger)
}

// GetPrefixedLogger returns a logger whose lines are tagged with prefix.
func GetPrefixedLogger(level logrus.Level, prefix string) *logrus.Entry {
	return GetLogger(level).WithField("prefix", prefix)
}
