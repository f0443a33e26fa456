package service

import (
	"context"
	"fmt"
	"io"

	"github.com/nemanja-m/gomr-hadoop/internal/launcher/core"
	"github.com/nemanja-m/gomr-hadoop/internal/shared/logging"
)

// Controller either prints a plan's command (dry run) or executes it.
type Controller struct {
	shell  core.Shell
	stdout io.Writer
	stderr io.Writer
	logger logging.Logger
}

func NewController(shell core.Shell, stdout, stderr io.Writer, logger logging.Logger) *Controller {
	return &Controller{
		shell:  shell,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

func (c *Controller) Execute(ctx context.Context, plan *core.Plan) error {
	opts := plan.Options

	if opts.Bool("dry_run") {
		c.logger.Info("Dry run, not executing command", "mode", plan.Mode)
		if _, err := fmt.Fprintln(c.stdout, plan.Command); err != nil {
			return fmt.Errorf("failed to print command: %w", err)
		}
		return nil
	}

	if plan.Mode == core.ModeHadoop && (opts.Bool("rm") || opts.Bool("overwrite")) {
		c.removeOutput(ctx, RemoveOutputCommand(opts))
	}

	c.logger.Info("Launching job", "mode", plan.Mode)
	c.logger.Debug("Running command", "command", plan.Command)
	if err := c.shell.Run(ctx, plan.Command, c.stdout, c.stderr); err != nil {
		return core.NewError(core.KindSubprocess, err, "command failed")
	}
	return nil
}

// removeOutput deletes the previous output. Failure is logged and the job
// is submitted anyway.
func (c *Controller) removeOutput(ctx context.Context, command string) {
	c.logger.Info("Removing output path", "command", command)
	if err := c.shell.Run(ctx, command, c.stdout, c.stderr); err != nil {
		c.logger.Warn("Failed to remove output path", "command", command, "error", err)
	}
}
