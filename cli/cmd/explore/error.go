package explore

import "github.com/ardnew/pagebind/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds = pkg.NewError("index out of range")
	ErrNoModel     = pkg.NewError("no value model to explore")
)
