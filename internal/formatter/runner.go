package formatter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	twerrors "github.com/eelitiawan/taskweave/internal/errors"
	"github.com/eelitiawan/taskweave/internal/logging"
)

// DefaultTool is the external formatting executable looked up on PATH.
const DefaultTool = "clang-format"

// Runner invokes the external formatting tool once over a collected file
// list. It performs no retries and no partial application: one process
// launch covers every file.
type Runner struct {
	tool   string
	stdout io.Writer
	stderr io.Writer
	logger logging.Logger
}

// NewRunner creates a runner for the given tool name. An empty name
// selects DefaultTool.
func NewRunner(tool string, logger logging.Logger) *Runner {
	if tool == "" {
		tool = DefaultTool
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}

	return &Runner{
		tool:   tool,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger.WithComponent("formatter"),
	}
}

// SetOutput redirects the runner's status and error streams.
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// Run formats the given files in place. An empty list reports "no files
// found" and succeeds without invoking the tool. A missing executable
// maps to a tool-not-found error (exit 1); a failing tool propagates its
// own exit code.
func (r *Runner) Run(ctx context.Context, files []string) error {
	if len(files) == 0 {
		fmt.Fprintln(r.stdout, "No source files found")
		return nil
	}

	fmt.Fprintf(r.stdout, "Formatting %d file(s)...\n", len(files))
	for _, f := range files {
		fmt.Fprintf(r.stdout, "  %s\n", f)
	}

	args := append([]string{"-i"}, files...)
	cmd := exec.CommandContext(ctx, r.tool, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			r.logger.Error(ctx, err, "formatter failed", "tool", r.tool, "code", exitErr.ExitCode())
			return twerrors.NewToolExecutionError(r.tool, exitErr.ExitCode(), err)
		case errors.Is(err, exec.ErrNotFound):
			r.logger.Error(ctx, err, "formatter not found", "tool", r.tool)
			return twerrors.NewToolNotFoundError(r.tool)
		default:
			return twerrors.NewIOError("run "+r.tool, err)
		}
	}

	fmt.Fprintln(r.stdout, "Done!")

	return nil
}
