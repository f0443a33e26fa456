package service

import (
	"github.com/kballard/go-shellquote"

	"github.com/nemanja-m/gomr-hadoop/internal/launcher/core"
	"github.com/nemanja-m/gomr-hadoop/internal/options"
)

// LocalBuilder simulates a map/reduce job as a shell pipeline:
//
//	cat INPUT... | MAPPER | SORT | REDUCER > OUTPUT
type LocalBuilder struct{}

func NewLocalBuilder() *LocalBuilder {
	return &LocalBuilder{}
}

func (b *LocalBuilder) Build(_ core.Arguments, res core.Resolution, opts *options.Store) (string, error) {
	var pipeline tokens
	if inputs := opts.Strings("input"); len(inputs) > 0 {
		pipeline.add("cat " + shellquote.Join(inputs...))
	}
	pipeline.add(ProcessorCommand(res.Mapper, core.ModeLocal, opts))
	if res.ReduceActive {
		pipeline.add(
			stringOr(opts, "sort_command", options.DefaultSortCommand),
			ProcessorCommand(res.Reducer, core.ModeLocal, opts),
		)
	}

	var cmd tokens
	cmd.add(pipeline.join(" | "))
	if opts.IsSet("output") {
		cmd.add("> " + shellquote.Join(opts.String("output")))
	}
	return cmd.join(" "), nil
}
