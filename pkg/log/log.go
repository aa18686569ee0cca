// Package log configures the logrus logger shared by all subcommands.
package log

import (
	"github.com/sirupsen/logrus"
)

func New(version string) *logrus.Entry {
	return logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{
		"program": "orgkit",
		"version": version,
	})
}

// SetLevel parses level and applies it to the entry's logger.
// An empty or invalid level keeps the default (info).
func SetLevel(level string, logE *logrus.Entry) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logE.WithField("log_level", level).Warn("the log level is invalid")
		return
	}
	logE.Logger.SetLevel(lvl)
}
