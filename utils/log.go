package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var rootLogger = &logrus.Logger{
	Out: os.Stderr,
	Formatter: &logrus.TextFormatter{
		DisableTimestamp: true,
	},
	Hooks: make(logrus.LevelHooks),
	Level: logrus.WarnLevel,
}

// NamedLogger returns the shared logger tagged with a package name
func NamedLogger(name string) *logrus.Entry {
	return rootLogger.WithField("pkg", name)
}

// SetLogLevel changes the level of every named logger
func SetLogLevel(level string) (err error) {
	var lvl logrus.Level
	if lvl, err = logrus.ParseLevel(strings.ToLower(level)); err != nil {
		return
	}
	rootLogger.SetLevel(lvl)
	return
}

// LogLevel is the current level name of the shared logger
func LogLevel() string {
	return rootLogger.GetLevel().String()
}
