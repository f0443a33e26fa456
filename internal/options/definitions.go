package options

// Flag classifies an option.
type Flag uint8

const (
	// Internal options are consumed by gomr-hadoop and never forwarded to
	// the local runner.
	Internal Flag = 1 << iota
	// JobConf options translate into a native Hadoop "-D key=value" token.
	JobConf
)

// Kind is the shape of an option's value on the command line.
type Kind uint8

const (
	KindString Kind = iota
	KindBool
	KindStringSlice
	KindStringArray
)

// Definition describes one known option.
type Definition struct {
	Name        string
	Description string
	Flags       Flag
	JobConfKey  string
	Kind        Kind
	Default     any
	// NoOptDefault is the value used when the flag is given without "=value".
	NoOptDefault string
}

func (d Definition) Has(flag Flag) bool {
	return d.Flags&flag != 0
}

const (
	DefaultHadoopRunner       = "hadoop"
	DefaultHadoopStreamingJar = "/usr/lib/hadoop-0.20-mapreduce/contrib/streaming/hadoop-streaming-2.0.0-mr1-cdh*.jar"
	DefaultLocalRunner        = "gomr-local"
	DefaultSortCommand        = "sort"
	DefaultMode               = "hadoop"
)

func jobconf(name, key string) Definition {
	return Definition{
		Name:        name,
		Description: key,
		Flags:       Internal | JobConf,
		JobConfKey:  key,
	}
}

var definitions = []Definition{
	// Hadoop streaming
	{Name: "hadoop_runner", Flags: Internal, Default: DefaultHadoopRunner, Description: "Path to hadoop executable. Use this for non-standard hadoop installations."},
	{Name: "hadoop_streaming_jar", Flags: Internal, Default: DefaultHadoopStreamingJar, Description: "Path (or glob) to the Hadoop streaming jar."},

	jobconf("io_sort_mb", "io.sort.mb"),
	jobconf("io_sort_record_percent", "io.sort.record.percent"),
	jobconf("job_name", "mapred.job.name"),
	jobconf("key_field_separator", "map.output.key.field.separator"),
	jobconf("map_speculative", "mapred.map.tasks.speculative.execution"),
	jobconf("reduce_speculative", "mapred.reduce.tasks.speculative.execution"),
	jobconf("map_tasks", "mapred.map.tasks"),
	jobconf("max_maps_per_cluster", "mapred.max.maps.per.cluster"),
	jobconf("max_maps_per_node", "mapred.max.maps.per.node"),
	jobconf("max_node_map_tasks", "mapred.tasktracker.map.tasks.maximum"),
	jobconf("max_node_reduce_tasks", "mapred.tasktracker.reduce.tasks.maximum"),
	jobconf("max_record_length", "mapred.linerecordreader.maxlength"),
	jobconf("max_reduces_per_cluster", "mapred.max.reduces.per.cluster"),
	jobconf("max_reduces_per_node", "mapred.max.reduces.per.node"),
	jobconf("max_tracker_failures", "mapred.max.tracker.failures"),
	jobconf("max_map_attempts", "mapred.map.max.attempts"),
	jobconf("max_reduce_attempts", "mapred.reduce.max.attempts"),
	jobconf("min_split_size", "mapred.min.split.size"),
	jobconf("output_field_separator", "stream.map.output.field.separator"),
	jobconf("partition_fields", "num.key.fields.for.partition"),
	jobconf("reduce_tasks", "mapred.reduce.tasks"),
	jobconf("respect_exit_status", "stream.non.zero.exit.is.failure"),
	{Name: "reuse_jvms", Flags: Internal | JobConf, JobConfKey: "mapred.job.reuse.jvm.num.tasks", NoOptDefault: "true", Description: "mapred.job.reuse.jvm.num.tasks (bare flag means -1, unlimited)"},
	jobconf("sort_fields", "stream.num.map.output.key.fields"),
	jobconf("timeout", "mapred.task.timeout"),

	{Name: "ignore_exit_status", Flags: Internal, Kind: KindBool, Description: "Don't fail a task when its processor exits non-zero."},
	{Name: "noempty", Flags: Internal, Kind: KindBool, Description: "Don't create zero-byte reduce files"},
	{Name: "split_on_xml_tag", Flags: Internal, Description: "Parse XML documents: anything between <tag> and </tag> is one record for map tasks."},
	{Name: "input_format", Flags: Internal, Description: "Fully qualified Java class name defining an alternative InputFormat."},
	{Name: "output_format", Flags: Internal, Description: "Fully qualified Java class name defining an alternative OutputFormat."},
	{Name: "java_opts", Flags: Internal, Kind: KindStringArray, Description: "Additional Java options to be passed to hadoop streaming."},
	{Name: "files", Flags: Internal, Kind: KindStringSlice, Description: "Comma-separated list of files (or globs) to be copied to the MapReduce cluster (-files)."},
	{Name: "jars", Flags: Internal, Kind: KindStringSlice, Description: "Comma-separated list of jars (or globs) to include on the Hadoop CLASSPATH (-libjars)."},
	{Name: "archives", Flags: Internal, Kind: KindStringSlice, Description: "Comma-separated list of archives to be unarchived on each worker (-archives)."},

	// Invocation
	{Name: "mode", Flags: Internal, Default: DefaultMode, Description: "Run in either 'hadoop' or 'local' mode"},
	{Name: "map_command", Flags: Internal, Description: "Shell command to run as mapper, in place of a constructed gomr-local command"},
	{Name: "reduce_command", Flags: Internal, Description: "Shell command to run as reducer, in place of a constructed gomr-local command"},
	{Name: "sort_command", Flags: Internal, Default: DefaultSortCommand, Description: "Shell command to run as sorter (only in local mode)"},
	{Name: "command_prefix", Flags: Internal, Description: "Prefix to insert before all gomr-local commands"},
	{Name: "local_runner", Flags: Internal, Default: DefaultLocalRunner, Description: "Program used to run a processor"},
	{Name: "mapper", Flags: Internal, Description: "Name of processor to use as a mapper"},
	{Name: "reducer", Flags: Internal, Description: "Name of processor to use as a reducer"},
	{Name: "runner_config", Flags: Internal, Description: "Alternative gomr-local configuration file exported to workers as GOMR_LOCAL_CONFIG"},
	{Name: "dry_run", Flags: Internal, Kind: KindBool, Description: "Echo the command that will be run, but don't run it"},
	{Name: "rm", Flags: Internal, Kind: KindBool, Description: "Recursively remove the destination directory."},
	{Name: "overwrite", Flags: Internal, Kind: KindBool, Description: "Alias for --rm."},
	{Name: "input", Flags: Internal, Description: "Comma-separated list of input paths"},
	{Name: "output", Flags: Internal, Description: "Output path."},
}

// Definitions returns the known options in declaration order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// JobConfOrder is the order in which jobconf options are emitted.
var JobConfOrder = []string{
	"io_sort_mb", "io_sort_record_percent",
	"map_speculative", "map_tasks",
	"max_maps_per_cluster", "max_maps_per_node",
	"max_node_map_tasks", "max_node_reduce_tasks",
	"max_reduces_per_cluster", "max_reduces_per_node",
	"max_record_length", "min_split_size",
	"output_field_separator", "key_field_separator",
	"partition_fields", "sort_fields",
	"reduce_tasks", "respect_exit_status",
	"reuse_jvms", "timeout",
	"max_tracker_failures", "max_map_attempts",
	"max_reduce_attempts", "reduce_speculative",
}
