package service

import (
	"github.com/nemanja-m/gomr-hadoop/internal/launcher/core"
	"github.com/nemanja-m/gomr-hadoop/internal/options"
)

const (
	defaultMapperName  = "mapper"
	defaultReducerName = "reducer"
)

// Resolver decides which processors act as mapper and reducer and whether
// the job has a reduce phase at all.
type Resolver struct {
	lookup core.ProcessorLookup
	opts   *options.Store
}

func NewResolver(lookup core.ProcessorLookup, opts *options.Store) *Resolver {
	return &Resolver{lookup: lookup, opts: opts}
}

// Resolve computes the roles for args. Reduce activity is decided first
// because the mapper rules depend on whether the job is map-only.
func (r *Resolver) Resolve(args core.Arguments) (core.Resolution, error) {
	reduce, err := r.ReduceActive(args)
	if err != nil {
		return core.Resolution{}, err
	}

	mapper, err := r.Mapper(args, !reduce)
	if err != nil {
		return core.Resolution{}, err
	}

	res := core.Resolution{Mapper: mapper, ReduceActive: reduce}
	if reduce {
		reducer, _, err := r.Reducer(args)
		if err != nil {
			return core.Resolution{}, err
		}
		res.Reducer = reducer
	}
	return res, nil
}

// ReduceActive reports whether the job runs a reduce phase:
//   - never when reduce_tasks is explicitly 0
//   - always with an explicit reduce_command
//   - otherwise only if a reducer can be found
func (r *Resolver) ReduceActive(args core.Arguments) (bool, error) {
	if r.opts.IsSet("reduce_tasks") && r.opts.Int("reduce_tasks") == 0 {
		return false, nil
	}
	if r.opts.IsSet("reduce_command") {
		return true, nil
	}
	_, found, err := r.Reducer(args)
	return found, err
}

// Mapper returns the mapper role. First match wins; failing to find one is
// an error.
func (r *Resolver) Mapper(args core.Arguments, mapOnly bool) (core.Role, error) {
	if r.opts.IsSet("map_command") {
		return core.Role{Command: r.opts.String("map_command")}, nil
	}

	ref := args.First()
	var name string
	switch {
	case r.opts.IsSet("mapper"):
		name = r.opts.String("mapper")
		if !r.lookup.Registered(name) {
			return core.Role{}, core.NewError(core.KindResolution, nil, "no such processor: '%s'", name)
		}
	case mapOnly && r.lookup.Registered(ref.String()):
		name = ref.String()
	case mapOnly && r.fileIsProcessor(ref):
		name = r.lookup.NameFromFile(ref.String())
	case args.Single() && r.explicitReducer() && r.lookup.Registered(ref.String()):
		name = ref.String()
	case args.Separate() && r.lookup.Registered(ref.String()):
		name = ref.String()
	case args.Separate() && r.fileIsProcessor(ref):
		name = r.lookup.NameFromFile(ref.String())
	case r.lookup.Registered(defaultMapperName):
		name = defaultMapperName
	default:
		return core.Role{}, core.NewError(core.KindResolution, nil, "could not find a processor to use as a mapper")
	}

	return core.Role{Name: name, Ref: ref, NeedsSelector: r.needsSelector(ref, name)}, nil
}

// Reducer returns the reducer role and whether one was found. Not finding a
// reducer is not an error; naming an unregistered one is.
func (r *Resolver) Reducer(args core.Arguments) (core.Role, bool, error) {
	if r.opts.IsSet("reduce_command") {
		return core.Role{Command: r.opts.String("reduce_command")}, true, nil
	}

	ref := args.Last()
	var name string
	switch {
	case r.opts.IsSet("reducer"):
		name = r.opts.String("reducer")
		if !r.lookup.Registered(name) {
			return core.Role{}, false, core.NewError(core.KindResolution, nil, "no such processor: '%s'", name)
		}
	case args.Single() && r.explicitMapper() && r.lookup.Registered(ref.String()):
		name = ref.String()
	case args.Separate() && r.lookup.Registered(ref.String()):
		name = ref.String()
	case args.Separate() && r.fileIsProcessor(ref):
		name = r.lookup.NameFromFile(ref.String())
	case r.lookup.Registered(defaultReducerName):
		name = defaultReducerName
	default:
		return core.Role{}, false, nil
	}

	return core.Role{Name: name, Ref: ref, NeedsSelector: r.needsSelector(ref, name)}, true, nil
}

func (r *Resolver) explicitMapper() bool {
	return r.opts.IsSet("mapper") || r.opts.IsSet("map_command")
}

func (r *Resolver) explicitReducer() bool {
	return r.opts.IsSet("reducer") || r.opts.IsSet("reduce_command")
}

// fileIsProcessor reports whether ref is a file named after a registered
// processor.
func (r *Resolver) fileIsProcessor(ref core.Reference) bool {
	if !ref.File {
		return false
	}
	return r.lookup.Registered(r.lookup.NameFromFile(ref.Path))
}

// needsSelector reports whether the command must say --run=name because the
// reference alone does not identify the processor.
func (r *Resolver) needsSelector(ref core.Reference, name string) bool {
	if ref.String() == name {
		return false
	}
	if r.lookup.NameFromFile(ref.String()) == name {
		return false
	}
	return true
}
