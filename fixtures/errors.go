package fixtures

import "errors"

// ErrTooFewObjects indicates a size parameter (n, a, b) was smaller than
// the minimum a topology constructor requires. Check with errors.Is.
var ErrTooFewObjects = errors.New("fixtures: parameter too small")

// ErrUnknownTopology indicates a Manifest named a Kind this package does
// not know how to build.
var ErrUnknownTopology = errors.New("fixtures: unknown topology kind")
