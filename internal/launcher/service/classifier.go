package service

import (
	"github.com/nemanja-m/gomr-hadoop/internal/launcher/core"
)

const maxArguments = 2

// CheckArgumentCount fails with a usage error when more than a mapper and a
// reducer reference were given.
func CheckArgumentCount(args []string) error {
	if len(args) > maxArguments {
		return core.NewError(core.KindUsage, nil, "cannot provide more than two arguments")
	}
	return nil
}

// ClassifyArguments turns positional arguments into references. Arguments
// that are not registered names but exist on disk are loaded as processor
// files first, each distinct file once, so that a file may register a name
// used by the other argument. Anything left that is neither a registered
// name nor a file is an error.
func ClassifyArguments(args []string, registry core.ProcessorRegistry) (core.Arguments, error) {
	if err := CheckArgumentCount(args); err != nil {
		return core.Arguments{}, err
	}

	paths := make(map[string]string, len(args))
	loaded := make(map[string]struct{}, len(args))
	for _, arg := range args {
		if registry.Registered(arg) {
			continue
		}
		path, err := core.ResolvePath(arg)
		if err != nil {
			continue
		}
		paths[arg] = path
		if _, ok := loaded[path]; ok {
			continue
		}
		if err := registry.LoadFile(path); err != nil {
			return core.Arguments{}, core.NewError(core.KindResolution, err, "could not load processor file %s", arg)
		}
		loaded[path] = struct{}{}
	}

	refs := make([]core.Reference, 0, len(args))
	for _, arg := range args {
		if path, ok := paths[arg]; ok {
			refs = append(refs, core.Reference{Arg: arg, Path: path, File: true})
			continue
		}
		if !registry.Registered(arg) {
			return core.Arguments{}, core.NewError(core.KindResolution, nil, "no such processor or file: %s", arg)
		}
		refs = append(refs, core.Reference{Arg: arg})
	}
	return core.NewArguments(refs...), nil
}
