package cmd

import "github.com/ardnew/pagebind/pkg"

var (
	ErrNoModel     = pkg.NewError("value model unavailable")
	ErrNoSource    = pkg.NewError("no page source")
	ErrUnresolved  = pkg.NewError("unresolved paths")
	ErrYAMLMarshal = pkg.NewError("marshal YAML")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
)
