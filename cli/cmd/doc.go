// Package cmd implements the pagebind subcommands: render, resolve, explore
// and init.
//
// Commands receive their dependencies through [context.Context]. The top
// level CLI stores the parsed [kong.Context] with [WithContext], the page
// sources with [WithSourceFiles] and a lazily built value model with
// [WithModel].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file written by the init command.
	ConfigIdentifier = "config"
)
