package service

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nemanja-m/gomr-hadoop/internal/launcher/core"
	"github.com/nemanja-m/gomr-hadoop/internal/processors"
)

// resolveArgs turns *.hcl names into fixture paths.
func resolveArgs(t *testing.T, args []string) []string {
	t.Helper()
	out := make([]string, len(args))
	for i, arg := range args {
		if strings.HasSuffix(arg, ".hcl") {
			out[i] = fixture(t, arg)
		} else {
			out[i] = arg
		}
	}
	return out
}

func TestResolver_MapOnly(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		opts   []any
		mapper string
	}{
		{
			name:   "explicit map command",
			opts:   []any{"map_command", "cut -f 1"},
			mapper: "cut -f 1",
		},
		{
			name:   "single widget",
			args:   []string{"regexp"},
			mapper: "gomr-local regexp",
		},
		{
			name:   "single file defining a processor named mapper",
			args:   []string{"map_only.hcl"},
			mapper: "gomr-local map_only.hcl --run=mapper",
		},
		{
			name:   "single file defining a processor named after the file",
			args:   []string{"tokenizer.hcl"},
			mapper: "gomr-local tokenizer.hcl",
		},
		{
			name:   "single file with the --mapper option",
			args:   []string{"processors.hcl"},
			opts:   []any{"mapper", "splitter"},
			mapper: "gomr-local processors.hcl --run=splitter",
		},
		{
			name:   "file defining mapper and reducer with zero reduce tasks",
			args:   []string{"word_count.hcl"},
			opts:   []any{"reduce_tasks", 0},
			mapper: "gomr-local word_count.hcl --run=mapper",
		},
		{
			name:   "two files with zero reduce tasks",
			args:   []string{"tokenizer.hcl", "counter.hcl"},
			opts:   []any{"reduce_tasks", "0"},
			mapper: "gomr-local tokenizer.hcl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := storeWith(append([]any{"input", "foo", "output", "bar"}, tt.opts...)...)
			p := mustPlan(t, resolveArgs(t, tt.args), opts)

			assert.False(t, p.Resolution.ReduceActive)
			assert.Equal(t, tt.mapper, mapperCommand(p))
			assert.Equal(t, core.Role{}, p.Resolution.Reducer)
		})
	}
}

func TestResolver_MapReduce(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		opts    []any
		mapper  string
		reducer string
	}{
		{
			name:    "explicit map and reduce commands",
			opts:    []any{"map_command", "cut -f 1", "reduce_command", "uniq -c"},
			mapper:  "cut -f 1",
			reducer: "uniq -c",
		},
		{
			name:    "two widgets",
			args:    []string{"regexp", "count"},
			mapper:  "gomr-local regexp",
			reducer: "gomr-local count",
		},
		{
			name:    "single file defining mapper and reducer",
			args:    []string{"word_count.hcl"},
			mapper:  "gomr-local word_count.hcl --run=mapper",
			reducer: "gomr-local word_count.hcl --run=reducer",
		},
		{
			name:    "two files",
			args:    []string{"tokenizer.hcl", "counter.hcl"},
			mapper:  "gomr-local tokenizer.hcl",
			reducer: "gomr-local counter.hcl",
		},
		{
			name:    "widget and file",
			args:    []string{"regexp", "counter.hcl"},
			mapper:  "gomr-local regexp",
			reducer: "gomr-local counter.hcl",
		},
		{
			name:    "file and widget",
			args:    []string{"tokenizer.hcl", "count"},
			mapper:  "gomr-local tokenizer.hcl",
			reducer: "gomr-local count",
		},
		{
			name:    "single widget as mapper with --reducer",
			args:    []string{"regexp"},
			opts:    []any{"reducer", "count"},
			mapper:  "gomr-local regexp",
			reducer: "gomr-local regexp --run=count",
		},
		{
			name:    "single widget as reducer with --mapper",
			args:    []string{"count"},
			opts:    []any{"mapper", "regexp"},
			mapper:  "gomr-local count --run=regexp",
			reducer: "gomr-local count",
		},
		{
			name:    "single widget with explicit reduce command",
			args:    []string{"regexp"},
			opts:    []any{"reduce_command", "wc -l"},
			mapper:  "gomr-local regexp",
			reducer: "wc -l",
		},
		{
			name:    "zero-padded reduce tasks are decimal",
			args:    []string{"regexp", "count"},
			opts:    []any{"reduce_tasks", "08"},
			mapper:  "gomr-local regexp",
			reducer: "gomr-local count",
		},
		{
			name:    "explicit nonzero reduce tasks",
			args:    []string{"regexp", "count"},
			opts:    []any{"reduce_tasks", 20},
			mapper:  "gomr-local regexp",
			reducer: "gomr-local count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := storeWith(append([]any{"input", "foo", "output", "bar"}, tt.opts...)...)
			p := mustPlan(t, resolveArgs(t, tt.args), opts)

			assert.True(t, p.Resolution.ReduceActive)
			assert.Equal(t, tt.mapper, mapperCommand(p))
			assert.Equal(t, tt.reducer, reducerCommand(p))
		})
	}
}

func TestResolver_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		opts    []any
		kind    error
		message string
	}{
		{
			name:    "unknown --mapper",
			args:    []string{"regexp"},
			opts:    []any{"mapper", "nope"},
			kind:    core.ErrResolution,
			message: "no such processor: 'nope'",
		},
		{
			name:    "unknown --reducer",
			args:    []string{"regexp"},
			opts:    []any{"reducer", "nope"},
			kind:    core.ErrResolution,
			message: "no such processor: 'nope'",
		},
		{
			name:    "no arguments and no mapper",
			kind:    core.ErrResolution,
			message: "could not find a processor to use as a mapper",
		},
		{
			name:    "file that is not a processor as mapper",
			args:    []string{"processors.hcl"},
			kind:    core.ErrResolution,
			message: "could not find a processor to use as a mapper",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := storeWith(append([]any{"input", "foo", "output", "bar"}, tt.opts...)...)
			_, err := plan(t, resolveArgs(t, tt.args), opts)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestResolver_ReduceActive(t *testing.T) {
	registry := processors.NewDefaultRegistry()
	require.NoError(t, registry.Register(processors.Processor{Name: "reducer"}))
	args := core.NewArguments(core.Reference{Arg: "regexp"})

	t.Run("explicit zero reduce tasks wins over a registered reducer", func(t *testing.T) {
		active, err := NewResolver(registry, storeWith("reduce_tasks", "0", "reduce_command", "uniq")).ReduceActive(args)
		require.NoError(t, err)
		assert.False(t, active)
	})

	t.Run("explicit reduce command", func(t *testing.T) {
		active, err := NewResolver(processors.NewDefaultRegistry(), storeWith("reduce_command", "uniq")).ReduceActive(args)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("registered reducer is found", func(t *testing.T) {
		active, err := NewResolver(registry, storeWith()).ReduceActive(args)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("nothing to reduce with", func(t *testing.T) {
		active, err := NewResolver(processors.NewDefaultRegistry(), storeWith("reduce_tasks", 5)).ReduceActive(args)
		require.NoError(t, err)
		assert.False(t, active)
	})
}

func TestResolver_Resolve(t *testing.T) {
	registry := processors.NewDefaultRegistry()
	args := core.NewArguments(core.Reference{Arg: "regexp"}, core.Reference{Arg: "count"})

	got, err := NewResolver(registry, storeWith()).Resolve(args)
	require.NoError(t, err)

	want := core.Resolution{
		Mapper:       core.Role{Name: "regexp", Ref: core.Reference{Arg: "regexp"}},
		Reducer:      core.Role{Name: "count", Ref: core.Reference{Arg: "count"}},
		ReduceActive: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolver_ExplicitReduceCommandHasNoSelector(t *testing.T) {
	p := mustPlan(t, []string{"regexp"}, storeWith("mode", "local", "reduce_command", "uniq -c"))

	assert.Equal(t, "uniq -c", reducerCommand(p))
	assert.NotContains(t, p.Command, "--run=")
}
