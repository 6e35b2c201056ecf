package discovery

import "errors"

// Internal rejection signals used between a window scan and its validate
// function. These never escape the package — a rejected candidate just
// means "keep scanning," per §4.4.3's validator semantics, so there is no
// need for the richer pkg/errors taxonomy here.
var (
	errNotIdle           = errors.New("discovery: judge region not idle")
	errImplausibleMarker = errors.New("discovery: implausible state marker")
)
