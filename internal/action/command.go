package action

import (
	"errors"
	"log/slog"
	"os/exec"
)

// RunCommand spawns argv detached and returns once the process has
// started; it is never awaited, so a long-running child cannot stall
// dispatch. The config file is trusted input from the user running the
// daemon, so there is deliberately no sandboxing.
func RunCommand(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command argv")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return err
	}
	slog.Debug("spawned command", "argv", argv, "pid", cmd.Process.Pid)

	// Reap the child in the background to avoid accumulating zombies.
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
