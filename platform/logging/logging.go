package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Init configures the standard logrus logger. Unknown levels fall back to info.
func Init(level, format string) {
	logrus.SetOutput(os.Stdout)
	if strings.EqualFold(format, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}
