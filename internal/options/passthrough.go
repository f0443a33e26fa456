package options

import "strings"

// SplitArgs separates "--name[=value]" tokens whose name is not known from
// the rest of argv. Known flags and positional arguments are returned
// untouched, in order, for the regular flag parser. A bare "--name" yields the
// value true. Everything after a literal "--" is left alone.
func SplitArgs(argv []string, known func(name string) bool) ([]string, []Value) {
	var (
		rest   []string
		extras []Value
	)
	for i, arg := range argv {
		if arg == "--" {
			rest = append(rest, argv[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "--") || len(arg) == 2 {
			rest = append(rest, arg)
			continue
		}

		name, value, hasValue := strings.Cut(arg[2:], "=")
		if known(name) {
			rest = append(rest, arg)
			continue
		}
		if hasValue {
			extras = append(extras, Value{Name: name, Value: value})
		} else {
			extras = append(extras, Value{Name: name, Value: true})
		}
	}
	return rest, extras
}
