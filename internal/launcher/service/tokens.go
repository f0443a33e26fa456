package service

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/nemanja-m/gomr-hadoop/internal/launcher/core"
	"github.com/nemanja-m/gomr-hadoop/internal/options"
)

// tokens accumulates optional command fragments in order. Blank fragments
// are dropped when joined, so callers can add unconditionally.
type tokens []string

func (t *tokens) add(parts ...string) {
	*t = append(*t, parts...)
}

func (t *tokens) addf(format string, args ...any) {
	*t = append(*t, fmt.Sprintf(format, args...))
}

func (t tokens) join(sep string) string {
	kept := make([]string, 0, len(t))
	for _, part := range t {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, sep)
}

// ProcessorCommand renders the command running role: the explicit shell
// command if one was given, otherwise an invocation of the local runner on
// the role's reference with the forwarded options.
func ProcessorCommand(role core.Role, mode core.Mode, opts *options.Store) string {
	if role.Explicit() {
		return role.Command
	}

	var cmd tokens
	cmd.add(opts.String("command_prefix"), stringOr(opts, "local_runner", options.DefaultLocalRunner), role.Ref.Render(mode))
	if role.NeedsSelector {
		cmd.add("--run=" + role.Name)
	}
	cmd.add(ForwardedParams(opts)...)
	return cmd.join(" ")
}

// ForwardedParams renders every non-internal option as --name=value with the
// value escaped so a shell hands it back unchanged.
func ForwardedParams(opts *options.Store) []string {
	forwarded := opts.Forwarded()
	params := make([]string, 0, len(forwarded))
	for _, v := range forwarded {
		params = append(params, "--"+v.Name+"="+shellquote.Join(options.Format(v.Value)))
	}
	return params
}

func stringOr(opts *options.Store, name, fallback string) string {
	if opts.IsSet(name) {
		return opts.String(name)
	}
	return fallback
}
