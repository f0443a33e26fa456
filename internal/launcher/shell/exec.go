package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

const defaultInterpreter = "/bin/sh"

// Exec runs command lines with "sh -c" and waits for them to exit. Commands
// read from stdin, so a local pipeline without --input consumes whatever is
// piped into the process.
type Exec struct {
	interpreter string
	stdin       io.Reader
}

func NewExec() *Exec {
	return NewExecWithStdin(os.Stdin)
}

func NewExecWithStdin(stdin io.Reader) *Exec {
	return &Exec{interpreter: defaultInterpreter, stdin: stdin}
}

func (e *Exec) Run(ctx context.Context, command string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, e.interpreter, "-c", command)
	cmd.Stdin = e.stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %q: %w", command, err)
	}
	return nil
}
