package processors

// Builtins lists the widgets gomr-local ships with. They can be referenced
// by name without loading any file.
func Builtins() []Processor {
	return []Processor{
		{Name: "identity", Description: "Emits every record unchanged."},
		{Name: "regexp", Description: "Emits records matching --match."},
		{Name: "not_regexp", Description: "Emits records not matching --match."},
		{Name: "limit", Description: "Emits at most --max records."},
		{Name: "flatten", Description: "Emits each element of array records."},
		{Name: "count", Description: "Counts consecutive identical records."},
		{Name: "group", Description: "Counts records per key."},
		{Name: "uniq", Description: "Drops consecutive duplicate records."},
	}
}
