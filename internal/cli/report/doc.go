// Package reportcmd implements the 'fpgaprof report' command.
//
// The command reads one profiling report JSON document, summarises it and
// prints the summary:
//
//	fpgaprof report profile.json
//	fpgaprof report profile.json --expand -k vadd,scale
//	fpgaprof report profile.json --where 'name.startsWith("mm") && !autorun'
//	fpgaprof report - -o json < profile.json
//
// # Output Formats
//
//   - text: tab-indented summary, colored on terminals (default)
//   - json: the report tree; NaN and infinite metrics are written as null
//   - csv: one row per metric of every source, kernel and instance group
//   - table: the csv rows aligned in columns
//
// The summary goes to stdout (or --out); logs go to stderr.
//
// # Kernel Selection
//
// --kernels keeps the named kernels and --where keeps kernels for which a CEL
// expression over name, compute_unit, autorun, device_ids, start_time,
// end_time and num_samples holds. When both are given a kernel must pass
// both. Boards and run information are never filtered.
//
// # Configuration
//
// Every flag except --out has a key under report: in
// ~/.fpgaprof/config.yaml and an FPGAPROF_* variable. Flags set on the
// command line win over the environment, which wins over the file.
package reportcmd
