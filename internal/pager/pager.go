// Package pager launches an external pager subprocess for large graphs, the
// way `git log` itself does. It is consumed only by cmd/ggraph.
package pager

import (
	"io"
	"os"
	"os/exec"

	"github.com/yourusername/ggraph/internal/ggraphErr"
)

// Pager wraps a running pager subprocess. Write feeds it rendered output;
// Close waits for the subprocess to exit after closing its stdin.
type Pager struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

// Command resolves the pager to run: an explicit override, else $PAGER,
// else "less".
func Command(override string) string {
	if override != "" {
		return override
	}
	if p := os.Getenv("PAGER"); p != "" {
		return p
	}
	return "less"
}

// Start launches the pager command with its stdout/stderr attached to the
// current process's, returning a writer for rendered content.
func Start(command string) (*Pager, error) {
	cmd := exec.Command("sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), "LESS=FRX")

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, ggraphErr.Wrap(ggraphErr.KindIO, err, "opening pager stdin")
	}
	if err := cmd.Start(); err != nil {
		return nil, ggraphErr.Wrap(ggraphErr.KindIO, err, "starting pager")
	}
	return &Pager{cmd: cmd, stdin: stdin}, nil
}

// Write implements io.Writer. A pager that has already exited (user quit
// early, e.g. "q" in less) makes Write return a broken-pipe error; Close
// still reaps the subprocess and does not report its exit status as a
// failure.
func (p *Pager) Write(b []byte) (int, error) {
	return p.stdin.Write(b)
}

// Close closes the pager's stdin and waits for it to exit. An error from
// the pager exiting because the reader quit early (broken pipe) is not
// reported as a failure.
func (p *Pager) Close() error {
	_ = p.stdin.Close()
	if err := p.cmd.Wait(); err != nil {
		if isBrokenPipe(err) {
			return nil
		}
		return ggraphErr.Wrap(ggraphErr.KindIO, err, "waiting for pager")
	}
	return nil
}

// isBrokenPipe treats any pager exit code as graceful: less(1) exits
// non-zero on some platforms when the user quits with data still buffered,
// and that is not a ggraph failure.
func isBrokenPipe(err error) bool {
	_, ok := err.(*exec.ExitError)
	return ok
}
