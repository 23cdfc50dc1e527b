// Package cli contains the command line interface for elconf.
//
// # Usage
//
//	elconf [flags] <command> [args]
//
// The commands are implemented in package cmd:
//
//	init    write the current flag values to the configuration file
//	fmt     reformat documents as elconf, JSON, YAML, XML, or Go values
//	get     select nodes and values with an XPath expression
//	merge   merge change documents into a base document
//	check   report syntax and structure errors
//
// Commands that read documents take source files as arguments. Without any,
// they fall back to the files given with --source, then to stdin.
//
// # Configuration File
//
// Flag defaults are read from an elconf document at
// ~/.config/elconf/config, whose config block holds one entry per flag.
// Nested blocks and dotted names join their path with hyphens and repeated
// leaves build list flags:
//
//	config {
//	    log.level  = debug
//	    log.format = text
//	    source /srv/net/base.conf;
//	    source /srv/net/lab.conf;
//	}
//
// A JSON file at the same path with a .json suffix is also read. Flags on
// the command line override both. Run "elconf init" to write the current
// values as a starting point.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, ms, none, or a layout)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output written to a terminal
//
// Logs go to stderr; command output goes to stdout.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o elconf .
//
//   - --pprof-mode: Enable profiling (see profile.Modes)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/elconf/pprof)
//
// # Examples
//
//	# Show how a file would be reformatted
//	elconf fmt --diff net.conf
//
//	# Names of all VMs with more than one CPU
//	elconf get '//vm[@cpu > 1]/@name' deploy.conf
//
//	# Overlay a lab change set onto the base network
//	elconf merge base.conf lab.conf > lab-network.conf
//
//	# Trace the parser while converting to JSON
//	elconf --log-level=trace --log-format=text fmt json net.conf
package cli
