package model

import "github.com/ardnew/pagebind/pkg"

// Predefined errors (sentinel values).
var (
	ErrLoadChart   = pkg.NewError("failed to load chart")
	ErrChart       = pkg.NewError("invalid chart descriptor")
	ErrDefinitions = pkg.NewError("invalid definitions")
	ErrCompileRule = pkg.NewError("failed to compile rule")
	ErrEvalRule    = pkg.NewError("failed to evaluate rule")
)
