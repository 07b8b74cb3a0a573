package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

type Level uint8

// Levels mirror logrus ordering: lower is more severe.
const (
	PanicLevel Level = iota
	FatalLevel
	ErrorLevel
	WarnLevel
	InfoLevel
	DebugLevel
)

type Fields logrus.Fields

// Entry is like a logrus.Entry but carries the module tag, so that filtering
// happens before any formatting work is done.
type Entry struct {
	mod Module
}

func (entry Entry) log() *logrus.Entry {
	return logrus.StandardLogger().WithField("_mod", modNames[entry.mod])
}

func (entry Entry) WithFields(fields Fields) *logrus.Entry {
	return entry.log().WithFields(logrus.Fields(fields))
}

func (entry Entry) Debugf(format string, args ...any) {
	if entry.mod.Enabled(DebugLevel) {
		entry.log().Debugf(format, args...)
	}
}

func (entry Entry) Infof(format string, args ...any) {
	if entry.mod.Enabled(InfoLevel) {
		entry.log().Infof(format, args...)
	}
}

func (entry Entry) Warnf(format string, args ...any) {
	if entry.mod.Enabled(WarnLevel) {
		entry.log().Warnf(format, args...)
	}
}

func (entry Entry) Errorf(format string, args ...any) {
	if entry.mod.Enabled(ErrorLevel) {
		entry.log().Errorf(format, args...)
	}
}

func (entry Entry) Fatalf(format string, args ...any) {
	if entry.mod.Enabled(FatalLevel) {
		entry.log().Fatalf(format, args...)
	}
}
