package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nemanja-m/gomr-hadoop/internal/launcher/service"
	"github.com/nemanja-m/gomr-hadoop/internal/launcher/shell"
	"github.com/nemanja-m/gomr-hadoop/internal/options"
	"github.com/nemanja-m/gomr-hadoop/internal/processors"
	"github.com/nemanja-m/gomr-hadoop/internal/shared/config"
	"github.com/nemanja-m/gomr-hadoop/internal/shared/logging"
)

const exitFailure = 127

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	if err := a.execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "gomr-hadoop: %v\n", err)
		stop()
		os.Exit(exitFailure)
	}
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	extras []options.Value
}

// execute splits forwarded options off argv, then parses the rest.
func (a *app) execute(ctx context.Context, argv []string) error {
	cmd := a.command()
	rest, extras := options.SplitArgs(argv, func(name string) bool {
		return name == "help" || cmd.Flags().Lookup(name) != nil
	})
	a.extras = extras
	cmd.SetArgs(rest)
	return cmd.ExecuteContext(ctx)
}

func (a *app) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gomr-hadoop PROCESSOR|FILE [PROCESSOR|FILE]",
		Short: "Run gomr processors as a Hadoop streaming job or a local pipeline",
		Long: `gomr-hadoop runs processors as the mapper and reducer of a map/reduce job.

With one argument it names (or is a file defining) the mapper, and the reducer
if one is defined alongside it. With two, the first is the mapper and the
second the reducer. In local mode the job is simulated as

  cat INPUT | MAPPER | sort | REDUCER > OUTPUT

otherwise a Hadoop streaming job is submitted. Options that gomr-hadoop does
not know are forwarded to every processor.

` + builtinHelp(processors.NewDefaultRegistry()),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.run,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	config.BindFlags(cmd.Flags())
	return cmd
}

func (a *app) run(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString(config.ConfigFlag)
	if err != nil {
		return err
	}
	cfg, err := config.LoadLauncher(configPath, cmd.Flags(), a.extras)
	if err != nil {
		return err
	}

	logger := logging.NewSlogLogger(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
		a.stderr,
	).With("run_id", uuid.NewString())

	controller := service.NewController(shell.NewExecWithStdin(a.stdin), a.stdout, a.stderr, logger)
	launcher := service.NewLauncher(
		processors.NewDefaultRegistry(),
		service.NewLocalBuilder(),
		service.NewClusterBuilder(),
		controller,
		logger,
	)
	return launcher.Run(cmd.Context(), args, cfg.Options)
}

// builtinHelp lists the processors available without a processor file.
func builtinHelp(registry *processors.Registry) string {
	var b strings.Builder
	b.WriteString("Built-in processors:\n")
	for _, name := range registry.List() {
		p, err := registry.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "  %-12s %s\n", p.Name, p.Description)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
