package bind

import "github.com/ardnew/pagebind/pkg"

// Predefined errors (sentinel values).
var (
	ErrUndefined   = pkg.NewError("value is undefined")
	ErrMissingAttr = pkg.NewError("missing attribute")
	ErrPanelID     = pkg.NewError("panel id has no numeric suffix")
	ErrNoTrigger   = pkg.NewError("panel trigger not found")
	ErrNoDismiss   = pkg.NewError("panel dismiss control not found")
	ErrVersioning  = pkg.NewError("failed to render versions")
)
