package debug

import (
	"os"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"
)

type debug struct {
	Introspect bool
	Decode     bool
	Resolve    bool
	Pipeline   bool
}

var (
	d      *debug
	logger atomic.Pointer[zap.SugaredLogger]
)

func init() {
	d = &debug{}
	d.Introspect = boolEnv("ODB_DEBUG_INTROSPECT")
	d.Decode = boolEnv("ODB_DEBUG_DECODE")
	d.Resolve = boolEnv("ODB_DEBUG_RESOLVE")
	d.Pipeline = boolEnv("ODB_DEBUG_PIPELINE")
	logger.Store(newLogger(d.Introspect || d.Decode || d.Resolve || d.Pipeline))
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func newLogger(on bool) *zap.SugaredLogger {
	if !on {
		return zap.NewNop().Sugar()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

func Introspect() bool {
	return d.Introspect
}
func Decode() bool {
	return d.Decode
}
func Resolve() bool {
	return d.Resolve
}
func Pipeline() bool {
	return d.Pipeline
}

// Logger returns the debug logger. It discards everything unless one of
// the ODB_DEBUG_* switches is set or SetLogger installed another one.
func Logger() *zap.SugaredLogger {
	return logger.Load()
}

// SetLogger replaces the debug logger; nil restores a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l.Sugar())
}

func Logf(msg string, args ...any) {
	Logger().Debugf(msg, args...)
}

// EnableAll turns every switch on. It is meant for command line setup,
// before any other goroutine reads the switches.
func EnableAll() {
	d.Introspect, d.Decode, d.Resolve, d.Pipeline = true, true, true, true
}
