package service

import (
	"context"

	"github.com/nemanja-m/gomr-hadoop/internal/launcher/core"
	"github.com/nemanja-m/gomr-hadoop/internal/options"
	"github.com/nemanja-m/gomr-hadoop/internal/shared/logging"
)

// Launcher turns positional arguments and options into a plan and hands it
// to the controller.
type Launcher struct {
	registry   core.ProcessorRegistry
	builders   map[core.Mode]core.CommandBuilder
	controller *Controller
	logger     logging.Logger
}

func NewLauncher(registry core.ProcessorRegistry, local, cluster core.CommandBuilder, controller *Controller, logger logging.Logger) *Launcher {
	return &Launcher{
		registry: registry,
		builders: map[core.Mode]core.CommandBuilder{
			core.ModeLocal:  local,
			core.ModeHadoop: cluster,
		},
		controller: controller,
		logger:     logger,
	}
}

// Plan validates the invocation, resolves roles and renders the command
// without side effects beyond loading processor files.
func (l *Launcher) Plan(args []string, opts *options.Store) (*core.Plan, error) {
	if err := CheckArgumentCount(args); err != nil {
		return nil, err
	}

	mode := core.ParseMode(opts.String("mode"))
	if mode == core.ModeHadoop {
		if err := RequirePaths(opts); err != nil {
			return nil, err
		}
	}

	classified, err := ClassifyArguments(args, l.registry)
	if err != nil {
		return nil, err
	}

	res, err := NewResolver(l.registry, opts).Resolve(classified)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Resolved roles",
		"mapper", roleLabel(res.Mapper),
		"reducer", roleLabel(res.Reducer),
		"reduce", res.ReduceActive,
	)

	if !res.ReduceActive && opts.IsSet("reduce_tasks") && opts.Int("reduce_tasks") != 0 {
		l.logger.Warn("No reducer found, running map-only and ignoring reduce task count",
			"reduce_tasks", opts.String("reduce_tasks"),
		)
	}
	normalized := opts.Normalize(res.ReduceActive)

	command, err := l.builders[mode].Build(classified, res, normalized)
	if err != nil {
		return nil, err
	}

	return &core.Plan{
		Mode:       mode,
		Arguments:  classified,
		Resolution: res,
		Options:    normalized,
		Command:    command,
	}, nil
}

func (l *Launcher) Run(ctx context.Context, args []string, opts *options.Store) error {
	plan, err := l.Plan(args, opts)
	if err != nil {
		return err
	}
	return l.controller.Execute(ctx, plan)
}

func roleLabel(role core.Role) string {
	if role.Explicit() {
		return role.Command
	}
	return role.Name
}
