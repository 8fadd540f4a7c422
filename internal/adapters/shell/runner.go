// Package shell provides the build invocation adapter.
package shell

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/sourcewizard-ai/bdep/internal/core/domain"
	"github.com/sourcewizard-ai/bdep/internal/core/ports"
	"go.trai.ch/zerr"
)

// NestedRunEnv is set in the environment of every spawned build step so a
// bdep invocation nested inside a build script can detect the outer run and
// skip itself at its entrypoint.
const NestedRunEnv = "BDEP_NESTED_RUN"

// Runner implements ports.Runner using os/exec. Each build step runs as an
// independent out-of-process unit of work in its own package directory; no
// two concurrent invocations share state.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes the package's build script through the shell, with the
// package directory as working directory. Stdout and stderr stream to the
// logger; the exit code is attached to the returned error.
func (r *Runner) Run(ctx context.Context, pkg domain.PackageRecord) error {
	if pkg.BuildScript == "" {
		return nil
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", pkg.BuildScript) //nolint:gosec // script comes from the package manifest
	cmd.Dir = pkg.Path
	cmd.Env = append(os.Environ(), NestedRunEnv+"=1")
	cmd.Stdout = &logWriter{logger: r.logger, prefix: pkg.Name.String()}
	cmd.Stderr = &logWriter{logger: r.logger, prefix: pkg.Name.String(), stderr: true}

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}

		wrapped := zerr.With(zerr.Wrap(err, "build command failed"), "exit_code", exitCode)
		return zerr.With(wrapped, "package", pkg.Name.String())
	}

	return nil
}

// logWriter splits subprocess output into lines and forwards them to the
// logger with the package name as prefix.
type logWriter struct {
	logger ports.Logger
	prefix string
	stderr bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		msg := "[" + w.prefix + "] " + line
		if w.stderr {
			w.logger.Warn(msg)
		} else {
			w.logger.Info(msg)
		}
	}
	return len(p), nil
}
