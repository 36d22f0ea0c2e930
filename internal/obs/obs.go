// Package obs defines the observability capability injected into the content
// pipeline. Components report fallback decisions, parse warnings, and
// validation gate outcomes through an Observer instead of a global logger.
package obs

import "log/slog"

// Observer receives structured log entries and gate signals from the pipeline.
type Observer interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// Gate records a named pass/fail checkpoint (e.g. "Data Validation").
	Gate(name string, passed bool)
	// Data records a data-shape detail at debug level.
	Data(msg string, args ...any)
}

type slogObserver struct {
	log *slog.Logger
}

// NewSlog returns an Observer backed by the given slog logger.
// A nil logger uses slog.Default().
func NewSlog(log *slog.Logger) Observer {
	if log == nil {
		log = slog.Default()
	}
	return &slogObserver{log: log}
}

func (o *slogObserver) Info(msg string, args ...any)  { o.log.Info(msg, args...) }
func (o *slogObserver) Warn(msg string, args ...any)  { o.log.Warn(msg, args...) }
func (o *slogObserver) Error(msg string, args ...any) { o.log.Error(msg, args...) }

func (o *slogObserver) Gate(name string, passed bool) {
	if passed {
		o.log.Info("gate passed", "gate", name)
		return
	}
	o.log.Warn("gate failed", "gate", name)
}

func (o *slogObserver) Data(msg string, args ...any) { o.log.Debug(msg, args...) }

type nopObserver struct{}

// Nop returns an Observer that discards everything. Useful in tests.
func Nop() Observer { return nopObserver{} }

func (nopObserver) Info(string, ...any)  {}
func (nopObserver) Warn(string, ...any)  {}
func (nopObserver) Error(string, ...any) {}
func (nopObserver) Gate(string, bool)    {}
func (nopObserver) Data(string, ...any)  {}
