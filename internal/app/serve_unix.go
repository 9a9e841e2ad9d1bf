//go:build !windows

package app

import (
	"fmt"
	"os"
	"syscall"
)

// shutdownSignals are the OS signals that trigger graceful shutdown.
var shutdownSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM}

// stopDaemon sends SIGTERM to the server named in the PID file. The
// server removes its own PID file once it has drained.
func stopDaemon() error {
	pid, err := readPID()
	if err != nil {
		return fmt.Errorf("no server running (could not read PID file: %v)", err)
	}

	if !processExists(pid) {
		_ = os.Remove(pidFilePath())
		return fmt.Errorf("no server running (PID %d is not active, removed stale PID file)", pid)
	}

	if err := syscall.Kill(pid, syscall.SIGTERM); err != nil {
		return fmt.Errorf("stopping server (PID %d): %w", pid, err)
	}

	fmt.Printf("Sent SIGTERM to server (PID %d)\n", pid)
	return nil
}

// processExists reports whether a process with the given PID is running.
func processExists(pid int) bool {
	// Signal 0 probes for existence without delivering anything.
	return syscall.Kill(pid, 0) == nil
}
