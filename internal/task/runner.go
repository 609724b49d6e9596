package task

import (
	"fmt"
	"log"
	"os"
	"os/exec"
)

// execPath resolves the binary to re-execute; tests substitute it.
var execPath = os.Executable

// Launch starts a detached worker process for a task and returns its ID.
// The worker is this same binary re-executed with the hidden worker
// subcommand; it inherits no pipes from the launcher and outlives it.
//
// The starting snapshot is written here, before the process spawns, so the
// task ID is pollable the moment Launch returns even if the worker dies
// before its first write. Every later write belongs to the worker.
func Launch(dataDir, kind string, args []string) (string, error) {
	id := NewID()

	exe, err := execPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable: %w", err)
	}

	if _, err := NewReporter(dataDir, kind, id); err != nil {
		return "", err
	}

	cmdArgs := append([]string{"worker", kind, "--task-id", id}, args...)
	cmd := exec.Command(exe, cmdArgs...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Env = os.Environ()
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start worker: %w", err)
	}
	pid := cmd.Process.Pid

	// Release the child so it is not reaped through us. The status file is
	// the only completion signal.
	if err := cmd.Process.Release(); err != nil {
		log.Printf("[task] could not release worker process: %v", err)
	}

	log.Printf("[task] launched %s worker %s (pid %d)", kind, id, pid)
	return id, nil
}
