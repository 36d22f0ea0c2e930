package obs

import "sync"

// GateSignal is one recorded gate outcome.
type GateSignal struct {
	Name   string
	Passed bool
}

// Recorder is an Observer that keeps everything in memory for tests.
type Recorder struct {
	mu       sync.Mutex
	infos    []string
	warnings []string
	errors   []string
	gates    []GateSignal
}

// NewRecorder creates an empty recording observer.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Info(msg string, _ ...any) {
	r.mu.Lock()
	r.infos = append(r.infos, msg)
	r.mu.Unlock()
}

func (r *Recorder) Warn(msg string, _ ...any) {
	r.mu.Lock()
	r.warnings = append(r.warnings, msg)
	r.mu.Unlock()
}

func (r *Recorder) Error(msg string, _ ...any) {
	r.mu.Lock()
	r.errors = append(r.errors, msg)
	r.mu.Unlock()
}

func (r *Recorder) Gate(name string, passed bool) {
	r.mu.Lock()
	r.gates = append(r.gates, GateSignal{Name: name, Passed: passed})
	r.mu.Unlock()
}

func (r *Recorder) Data(string, ...any) {}

// Warnings returns a copy of recorded warning messages.
func (r *Recorder) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.warnings...)
}

// Gates returns a copy of recorded gate signals.
func (r *Recorder) Gates() []GateSignal {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]GateSignal{}, r.gates...)
}
