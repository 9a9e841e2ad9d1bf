//go:build windows

package app

import (
	"fmt"
	"os"
)

// shutdownSignals are the OS signals that trigger graceful shutdown.
var shutdownSignals = []os.Signal{os.Interrupt}

// stopDaemon terminates the server named in the PID file. Windows has no
// SIGTERM, so the process is killed without draining.
func stopDaemon() error {
	pid, err := readPID()
	if err != nil {
		return fmt.Errorf("no server running (could not read PID file: %v)", err)
	}

	proc, err := os.FindProcess(pid)
	if err != nil || !processExists(pid) {
		_ = os.Remove(pidFilePath())
		return fmt.Errorf("no server running (PID %d is not active, removed stale PID file)", pid)
	}

	if err := proc.Kill(); err != nil {
		return fmt.Errorf("stopping server (PID %d): %w", pid, err)
	}

	_ = os.Remove(pidFilePath())
	fmt.Printf("Stopped server (PID %d)\n", pid)
	return nil
}

// processExists reports whether a process with the given PID is running.
func processExists(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess always succeeds on Windows; probing with a nil signal
	// fails for a dead process.
	return proc.Signal(os.Signal(nil)) == nil
}
