package obs_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/studyhub-app/studyhub-backend/internal/obs"
)

func TestSlogObserver_Gate(t *testing.T) {
	var buf bytes.Buffer
	observer := obs.NewSlog(slog.New(slog.NewJSONHandler(&buf, nil)))

	observer.Gate("Data Validation", true)
	observer.Gate("Data Validation", false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("log lines = %d, want 2", len(lines))
	}

	var passed, failed map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &passed); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &failed); err != nil {
		t.Fatal(err)
	}

	if passed["msg"] != "gate passed" || passed["gate"] != "Data Validation" {
		t.Errorf("passed line = %v, want gate passed", passed)
	}
	if failed["msg"] != "gate failed" || failed["level"] != "WARN" {
		t.Errorf("failed line = %v, want gate failed at WARN", failed)
	}
}

func TestRecorder(t *testing.T) {
	r := obs.NewRecorder()
	r.Warn("first", "k", "v")
	r.Warn("second")
	r.Gate("Data Validation", true)

	if got := r.Warnings(); len(got) != 2 || got[0] != "first" {
		t.Errorf("Warnings() = %v, want [first second]", got)
	}
	gates := r.Gates()
	if len(gates) != 1 || gates[0].Name != "Data Validation" || !gates[0].Passed {
		t.Errorf("Gates() = %+v, want one passed Data Validation", gates)
	}

	// Returned slices are snapshots.
	r.Warnings()[0] = "mutated"
	if r.Warnings()[0] != "first" {
		t.Error("Warnings() aliases internal state")
	}
}
