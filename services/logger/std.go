package logsvc

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/matedu/matedu-go/core"
)

// StdLogger is the default local logger.
type StdLogger struct {
	log *logrus.Logger
}

var _ core.Logger = (*StdLogger)(nil)

func NewStdLogger(conf *core.Config) *StdLogger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if conf.Debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return &StdLogger{log: l}
}

func (l *StdLogger) Enable(enabled bool) {
	if enabled {
		l.log.SetOutput(os.Stderr)
	} else {
		l.log.SetOutput(io.Discard)
	}
}

func (l *StdLogger) Debug(msg string, args ...interface{}) { l.log.Debug(join(msg, args)...) }
func (l *StdLogger) Info(msg string, args ...interface{})  { l.log.Info(join(msg, args)...) }
func (l *StdLogger) Warn(msg string, args ...interface{})  { l.log.Warn(join(msg, args)...) }
func (l *StdLogger) Error(msg string, args ...interface{}) { l.log.Error(join(msg, args)...) }
func (l *StdLogger) Fatal(msg string, args ...interface{}) { l.log.Fatal(join(msg, args)...) }

func join(msg string, args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, msg)
	for _, arg := range args {
		out = append(out, " ", arg)
	}
	return out
}
