package service

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/nemanja-m/gomr-hadoop/internal/launcher/core"
	"github.com/nemanja-m/gomr-hadoop/internal/options"
)

const (
	clusterSeparator  = " \t\\\n  "
	keyFieldPartition = "org.apache.hadoop.mapred.lib.KeyFieldBasedPartitioner"
	runnerConfigEnv   = "GOMR_LOCAL_CONFIG"
)

// recycledEnv are re-exported into the task environment so workers run the
// local runner the way the submitting host does.
var recycledEnv = []string{runnerConfigEnv, "LD_LIBRARY_PATH", "LANG"}

var jobNameDisallowed = regexp.MustCompile(`[^A-Za-z0-9_/.+-]+`)

// ClusterBuilder renders a Hadoop streaming submission.
type ClusterBuilder struct {
	lookupEnv func(string) (string, bool)
}

func NewClusterBuilder() *ClusterBuilder {
	return &ClusterBuilder{lookupEnv: os.LookupEnv}
}

// NewClusterBuilderWithEnv uses lookupEnv instead of the process environment.
func NewClusterBuilderWithEnv(lookupEnv func(string) (string, bool)) *ClusterBuilder {
	return &ClusterBuilder{lookupEnv: lookupEnv}
}

// Build returns the full "hadoop jar" command. You should be able to copy,
// paste and run it unmodified when debugging.
func (b *ClusterBuilder) Build(args core.Arguments, res core.Resolution, opts *options.Store) (string, error) {
	if err := RequirePaths(opts); err != nil {
		return "", err
	}

	var cmd tokens
	cmd.add(HadoopRunner(opts))
	cmd.add("jar " + stringOr(opts, "hadoop_streaming_jar", options.DefaultHadoopStreamingJar))
	cmd.add(jobConfOptions(opts)...)
	cmd.addf("-D mapred.job.name='%s'", JobName(args, opts))
	cmd.add(ioFormats(opts)...)

	files, err := distributedFiles(args, opts)
	if err != nil {
		return "", err
	}
	cmd.add(files...)

	if opts.IsSet("partition_fields") {
		cmd.add("-partitioner " + keyFieldPartition)
	}
	if opts.Bool("noempty") {
		cmd.add("-lazyOutput")
	}
	cmd.add(parseJavaOpts(opts.Strings("java_opts"))...)
	if tag := opts.String("split_on_xml_tag"); tag != "" {
		cmd.addf("-inputreader 'StreamXmlRecordReader,begin=<%s>,end=</%s>'", tag, tag)
	}

	reducer := ""
	if res.ReduceActive {
		reducer = ProcessorCommand(res.Reducer, core.ModeHadoop, opts)
	}
	cmd.add(
		streamingArg("-mapper", ProcessorCommand(res.Mapper, core.ModeHadoop, opts)),
		streamingArg("-reducer", reducer),
		streamingArg("-input", opts.String("input")),
		streamingArg("-output", opts.String("output")),
	)
	cmd.add(b.recycleEnv(opts)...)

	return cmd.join(clusterSeparator), nil
}

// RequirePaths fails unless both --input and --output are given.
func RequirePaths(opts *options.Store) error {
	if !opts.IsSet("input") || !opts.IsSet("output") {
		return core.NewError(core.KindMissingPath, nil, "explicit --input and --output paths are required to run a job in cluster mode")
	}
	return nil
}

func HadoopRunner(opts *options.Store) string {
	return stringOr(opts, "hadoop_runner", options.DefaultHadoopRunner)
}

// RemoveOutputCommand recursively deletes the job's output path on the cluster.
func RemoveOutputCommand(opts *options.Store) string {
	return HadoopRunner(opts) + " fs -rmr " + singleQuote(opts.String("output"))
}

// JobName is --job_name or one derived from the arguments and paths, with
// anything but [A-Za-z0-9_/.+-] stripped.
func JobName(args core.Arguments, opts *options.Store) string {
	if opts.IsSet("job_name") {
		return opts.String("job_name")
	}

	var (
		stems []string
		seen  = make(map[string]struct{})
	)
	for _, ref := range args.References() {
		if _, ok := seen[ref.String()]; ok {
			continue
		}
		seen[ref.String()] = struct{}{}
		stems = append(stems, ref.Stem())
	}

	name := strings.Join(stems, "-") + "---" + opts.String("input") + "---" + opts.String("output")
	return jobNameDisallowed.ReplaceAllString(name, "")
}

// jobConfOptions translates friendly option names into -D native=value
// tokens, in a fixed order.
func jobConfOptions(opts *options.Store) []string {
	var out []string
	for _, name := range options.JobConfOrder {
		if !opts.IsSet(name) {
			continue
		}
		def, ok := opts.Definition(name)
		if !ok {
			continue
		}
		out = append(out, fmt.Sprintf("-D %s=%s", def.JobConfKey, shellquote.Join(opts.String(name))))
	}
	return out
}

func ioFormats(opts *options.Store) []string {
	var out []string
	if opts.IsSet("input_format") {
		out = append(out, streamingArg("-inputformat", opts.String("input_format")))
	}
	if opts.IsSet("output_format") {
		out = append(out, streamingArg("-outputformat", opts.String("output_format")))
	}
	return out
}

// distributedFiles renders -files, -archives and -libjars. Processor files
// given as arguments are always shipped. Files and jars are globbed locally;
// archives may live on HDFS and are passed as given.
func distributedFiles(args core.Arguments, opts *options.Store) ([]string, error) {
	files := opts.Strings("files")
	for _, ref := range args.References() {
		if ref.File {
			files = append(files, ref.Path)
		}
	}
	files, err := core.ExpandLocalGlobs(files)
	if err != nil {
		return nil, fmt.Errorf("failed to expand --files: %w", err)
	}

	jars, err := core.ExpandLocalGlobs(opts.Strings("jars"))
	if err != nil {
		return nil, fmt.Errorf("failed to expand --jars: %w", err)
	}

	archives := dedupe(opts.Strings("archives"))

	var out []string
	if len(files) > 0 {
		out = append(out, streamingArg("-files", strings.Join(files, ",")))
	}
	if len(archives) > 0 {
		out = append(out, streamingArg("-archives", strings.Join(archives, ",")))
	}
	if len(jars) > 0 {
		out = append(out, streamingArg("-libjars", strings.Join(jars, ",")))
	}
	return out, nil
}

// parseJavaOpts splits each entry on -D so that "-D a=1 -D b=2" becomes two
// tokens.
func parseJavaOpts(javaOpts []string) []string {
	var out []string
	for _, opt := range javaOpts {
		for part := range strings.SplitSeq(opt, "-D") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, "-D "+part)
			}
		}
	}
	return out
}

func (b *ClusterBuilder) recycleEnv(opts *options.Store) []string {
	var out []string
	for _, name := range recycledEnv {
		value, ok := b.lookupEnv(name)
		if name == runnerConfigEnv && opts.IsSet("runner_config") {
			value, ok = opts.String("runner_config"), true
		}
		if !ok || value == "" {
			continue
		}
		out = append(out, streamingArg("-cmdenv", name+"="+value))
	}
	return out
}

func streamingArg(flag, value string) string {
	return fmt.Sprintf("%-13s %s", flag, singleQuote(value))
}

// singleQuote wraps value in single quotes. Quotes inside value are closed,
// escaped and reopened so the shell reads it back as one word.
func singleQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

func dedupe(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
