package action

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/google/uuid"
)

// ErrNoProcess is returned when terminating a handle that carries no
// live process.
var ErrNoProcess = errors.New("handle has no process")

// Handle identifies one launched application.
type Handle struct {
	ID   string
	App  string
	PID  int
	proc *os.Process
}

// Launcher is the process-control collaborator consumed by the
// dispatcher.
type Launcher interface {
	// Launch starts the application for the given target and returns
	// a handle to it. The launch is fire-and-forget: readiness of the
	// application is not awaited.
	Launch(ctx context.Context, target string) (*Handle, error)

	// OpenURL opens the URL in the default browser.
	OpenURL(ctx context.Context, url string) error

	// Terminate requests termination of a previously launched
	// application.
	Terminate(h *Handle) error
}

// ExecLauncher implements Launcher with os/exec, resolving program keys
// through the per-platform candidate table.
type ExecLauncher struct{}

// NewExecLauncher creates a new ExecLauncher.
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{}
}

// Launch resolves the target and starts it detached from the loop.
// The launched process is reaped in the background so it never lingers
// as a zombie.
func (l *ExecLauncher) Launch(ctx context.Context, target string) (*Handle, error) {
	path, err := resolveProgram(target)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", path, err)
	}

	go cmd.Wait()

	return &Handle{
		ID:   uuid.NewString(),
		App:  target,
		PID:  cmd.Process.Pid,
		proc: cmd.Process,
	}, nil
}

// OpenURL shells out to the platform opener (xdg-open, open, rundll32).
func (l *ExecLauncher) OpenURL(ctx context.Context, url string) error {
	opener, args := urlOpener(url)

	path, err := exec.LookPath(opener)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrProgramNotFound, opener)
	}

	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}

	go cmd.Wait()

	return nil
}

// Terminate kills the process behind the handle.
func (l *ExecLauncher) Terminate(h *Handle) error {
	if h == nil || h.proc == nil {
		return ErrNoProcess
	}

	if err := h.proc.Kill(); err != nil {
		return fmt.Errorf("kill pid %d: %w", h.PID, err)
	}

	return nil
}
