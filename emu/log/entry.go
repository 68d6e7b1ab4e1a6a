package log

import (
	"gopkg.in/Sirupsen/logrus.v0"
)

// Entry is a printf-style log entry of a module.
type Entry struct {
	mod Module
}

func (entry Entry) log() *logrus.Entry {
	final := logrus.StandardLogger().WithField("_mod", entry.mod.String())

	var z EntryZ
	for _, c := range contexts {
		c.AddLogContext(&z)
	}
	if z.zfidx == 0 {
		return final
	}

	fields := make(logrus.Fields, z.zfidx)
	for i := range z.zfbuf[:z.zfidx] {
		fields[z.zfbuf[i].Key] = z.zfbuf[i].Value()
	}
	return final.WithFields(fields)
}

func (entry Entry) Warnf(format string, args ...any) {
	if entry.mod.Enabled(WarnLevel) {
		entry.log().Warnf(format, args...)
	}
}

// A Context adds fields to every log entry, for example the state of the
// component that is currently running.
type Context interface {
	AddLogContext(z *EntryZ)
}

var contexts []Context

// AddContext registers a log context.
func AddContext(ctx Context) {
	contexts = append(contexts, ctx)
}

// RemoveContext unregisters a log context previously added with AddContext.
func RemoveContext(ctx Context) {
	for i, c := range contexts {
		if c == ctx {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}
