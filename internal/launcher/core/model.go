package core

import (
	"path/filepath"
	"strings"

	"github.com/nemanja-m/gomr-hadoop/internal/options"
)

type Mode string

const (
	ModeHadoop Mode = "hadoop"
	ModeLocal  Mode = "local"
)

// ParseMode treats anything but "local" as Hadoop mode.
func ParseMode(s string) Mode {
	if s == string(ModeLocal) {
		return ModeLocal
	}
	return ModeHadoop
}

// Reference is one positional argument: either the name of a registered
// processor (a widget) or a processor file.
type Reference struct {
	Arg  string
	Path string
	File bool
}

// String is the text the reference is matched and rendered by: the resolved
// path for files, the argument itself otherwise.
func (r Reference) String() string {
	if r.File {
		return r.Path
	}
	return r.Arg
}

// Render returns the reference as it appears in a processor command. On a
// Hadoop cluster files are shipped with -files into the task's working
// directory, so only their base name is used.
func (r Reference) Render(mode Mode) string {
	if r.File && mode == ModeHadoop {
		return filepath.Base(r.Path)
	}
	return r.String()
}

// Stem is the base name of the reference without its extension.
func (r Reference) Stem() string {
	s := r.String()
	if s == "" {
		return ""
	}
	base := filepath.Base(s)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Arguments are the classified positional arguments, at most two.
type Arguments struct {
	refs []Reference
}

func NewArguments(refs ...Reference) Arguments {
	return Arguments{refs: refs}
}

func (a Arguments) Len() int {
	return len(a.refs)
}

func (a Arguments) References() []Reference {
	return append([]Reference(nil), a.refs...)
}

// Single reports whether one argument names the mapper and/or reducer.
func (a Arguments) Single() bool {
	return len(a.refs) == 1
}

// Separate reports whether mapper and reducer were given as two arguments.
func (a Arguments) Separate() bool {
	return len(a.refs) == 2
}

// First is the mapper reference; zero when there are no arguments.
func (a Arguments) First() Reference {
	if len(a.refs) == 0 {
		return Reference{}
	}
	return a.refs[0]
}

// Last is the reducer reference; equal to First for a single argument.
func (a Arguments) Last() Reference {
	if len(a.refs) == 0 {
		return Reference{}
	}
	return a.refs[len(a.refs)-1]
}

// Role is the resolved mapper or reducer. Exactly one of Command (a literal
// shell command) or Name (a registered processor) is set.
type Role struct {
	Command       string
	Name          string
	Ref           Reference
	NeedsSelector bool
}

func (r Role) Explicit() bool {
	return r.Command != ""
}

// Resolution is the outcome of role resolution. When ReduceActive is false
// Reducer is the zero Role.
type Resolution struct {
	Mapper       Role
	Reducer      Role
	ReduceActive bool
}

type Plan struct {
	Mode       Mode
	Arguments  Arguments
	Resolution Resolution
	// Options is the normalized snapshot the command was rendered from.
	Options *options.Store
	Command string
}
