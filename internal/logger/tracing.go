package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Tracer implements tracing.Trace on top of the zap logger, so traces of the
// library packages end up in the same console and log file as the messages
// of the commands.
type Tracer struct {
	sugar *zap.SugaredLogger
	level tracing.TraceLevel
}

// NewTracer creates a tracer writing to l, named by key.
func NewTracer(l *zap.Logger, key string, level tracing.TraceLevel) *Tracer {
	return &Tracer{
		sugar: l.WithOptions(zap.AddCallerSkip(1)).Named(key).Sugar(),
		level: level,
	}
}

// Errorf is part of interface Trace
func (t *Tracer) Errorf(s string, args ...interface{}) {
	t.sugar.Errorf(s, args...)
}

// Infof is part of interface Trace
func (t *Tracer) Infof(s string, args ...interface{}) {
	if t.level < tracing.LevelInfo {
		return
	}
	t.sugar.Infof(s, args...)
}

// Debugf is part of interface Trace
func (t *Tracer) Debugf(s string, args ...interface{}) {
	if t.level < tracing.LevelDebug {
		return
	}
	t.sugar.Debugf(s, args...)
}

// P is part of interface Trace
func (t *Tracer) P(key string, val interface{}) tracing.Trace {
	return &Tracer{sugar: t.sugar.With(key, fmt.Sprint(val)), level: t.level}
}

// SetTraceLevel is part of interface Trace
func (t *Tracer) SetTraceLevel(l tracing.TraceLevel) {
	t.level = l
}

// GetTraceLevel is part of interface Trace
func (t *Tracer) GetTraceLevel() tracing.TraceLevel {
	return t.level
}

// SetOutput is part of interface Trace. It detaches the tracer from the
// global logger and writes plain console lines to w.
func (t *Tracer) SetOutput(w io.Writer) {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(false)),
		zapcore.AddSync(w), zapcore.DebugLevel)
	t.sugar = zap.New(core).Sugar()
}

// traceSelector hands out one tracer per key.
type traceSelector struct {
	sync.Mutex
	log     *zap.Logger
	level   tracing.TraceLevel
	tracers map[string]*Tracer
}

func (sel *traceSelector) Select(key string) tracing.Trace {
	sel.Lock()
	defer sel.Unlock()
	t, ok := sel.tracers[key]
	if !ok {
		t = NewTracer(sel.log, key, sel.level)
		sel.tracers[key] = t
	}
	return t
}

// InstallTracing routes every tracing.Select of the library packages to the
// current logger. Levels are named as for the logger; "warn" traces errors
// and infos.
func InstallTracing(level string) {
	tracing.SetTraceSelector(&traceSelector{
		log:     Log,
		level:   tracing.TraceLevelFromString(level),
		tracers: make(map[string]*Tracer),
	})
}
