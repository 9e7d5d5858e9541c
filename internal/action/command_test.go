package action

import (
	"testing"
	"time"

	"github.com/depeter/mousebind/internal/binding"
)

func TestRunCommandEmptyArgv(t *testing.T) {
	if err := RunCommand(nil); err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestRunCommandSpawnFailure(t *testing.T) {
	if err := RunCommand([]string{"/nonexistent/mousebind-test-binary"}); err == nil {
		t.Fatal("expected spawn error for missing binary")
	}
}

func TestRunCommandDoesNotWait(t *testing.T) {
	start := time.Now()
	if err := RunCommand([]string{"sleep", "10"}); err != nil {
		t.Skipf("sleep unavailable: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("RunCommand blocked for %v; must return at spawn", elapsed)
	}
}

func TestExecutorSkipsKeyComboWithoutInjector(t *testing.T) {
	e := NewExecutor(nil)
	// Must not panic or block; the failure is logged and skipped.
	e.Execute(binding.KeyCombo("KEY_BACK"))
	if err := e.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

type recordingInjector struct {
	combos [][]string
	closed bool
}

func (r *recordingInjector) Inject(keys []string) error {
	r.combos = append(r.combos, keys)
	return nil
}

func (r *recordingInjector) Close() error {
	r.closed = true
	return nil
}

func TestExecutorRoutesKeyCombo(t *testing.T) {
	rec := &recordingInjector{}
	e := NewExecutor(rec)
	e.Execute(binding.KeyCombo("KEY_LEFTALT", "KEY_LEFT"))

	if len(rec.combos) != 1 || len(rec.combos[0]) != 2 {
		t.Fatalf("injector got %v", rec.combos)
	}
	if err := e.Close(); err != nil || !rec.closed {
		t.Fatalf("close: err=%v closed=%v", err, rec.closed)
	}
}
