package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalBuilder_Build(t *testing.T) {
	tests := []struct {
		name string
		args []string
		opts []any
		want string
	}{
		{
			name: "reads stdin and writes stdout by default",
			args: []string{"regexp"},
			want: "gomr-local regexp",
		},
		{
			name: "reads multiple input paths",
			args: []string{"regexp"},
			opts: []any{"input", "/some/file.tsv,something_else.dat"},
			want: "cat /some/file.tsv something_else.dat | gomr-local regexp",
		},
		{
			name: "writes to an output file",
			args: []string{"regexp"},
			opts: []any{"output", "/tmp/output.json"},
			want: "gomr-local regexp > /tmp/output.json",
		},
		{
			name: "escapes the output path",
			args: []string{"regexp"},
			opts: []any{"output", "/tmp/my output.json"},
			want: "gomr-local regexp > '/tmp/my output.json'",
		},
		{
			name: "sorts between mapper and reducer",
			args: []string{"regexp", "count"},
			want: "gomr-local regexp | sort | gomr-local count",
		},
		{
			name: "custom sort command",
			args: []string{"regexp", "count"},
			opts: []any{"sort_command", "sort -n"},
			want: "gomr-local regexp | sort -n | gomr-local count",
		},
		{
			name: "explicit commands",
			opts: []any{"map_command", "cut -f 1", "reduce_command", "uniq -c", "input", "in.tsv", "output", "out.tsv"},
			want: "cat in.tsv | cut -f 1 | sort | uniq -c > out.tsv",
		},
		{
			name: "command prefix and custom runner",
			args: []string{"regexp", "count"},
			opts: []any{"command_prefix", "nice -n 10", "local_runner", "/opt/bin/gomr-local"},
			want: "nice -n 10 /opt/bin/gomr-local regexp | sort | nice -n 10 /opt/bin/gomr-local count",
		},
		{
			name: "forwards unknown options to both processors",
			args: []string{"regexp", "count"},
			opts: []any{"match", "foo", "dry_run", true},
			want: "gomr-local regexp --match=foo | sort | gomr-local count --match=foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := storeWith(append([]any{"mode", "local"}, tt.opts...)...)
			p := mustPlan(t, tt.args, opts)

			assert.Equal(t, tt.want, p.Command)
		})
	}
}

func TestLocalBuilder_MapOnlySkipsSort(t *testing.T) {
	p := mustPlan(t, []string{"regexp"}, storeWith("mode", "local", "sort_command", "sort -n"))

	assert.NotContains(t, p.Command, "sort")
}

func TestLocalBuilder_UsesFullFilePaths(t *testing.T) {
	path := fixture(t, "tokenizer.hcl")
	p := mustPlan(t, []string{path}, storeWith("mode", "local"))

	assert.Equal(t, "gomr-local "+path, p.Command)
}
