// Package cmd implements the elconf subcommands: fmt, get, merge, check,
// and init.
//
// Commands that read documents accept positional source files. Without any,
// they read the files named by the global --source flag, and without those,
// stdin. Results go to stdout unless [WithOutput] selects another writer.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file. It is also the tag of the block in that file
	// whose attributes supply default flag values.
	ConfigIdentifier = "config"
)
