package arbor

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Sentinel errors surfaced by the two public operations that can fail
// recoverably: Allocate and Resize. Both are storage-layer conditions —
// the underlying Allocator returned an error — and never leave partial
// graph state behind.
var (
	// ErrStorageExhausted wraps a failure from the storage layer's
	// Allocator. Check with errors.Is.
	ErrStorageExhausted = errors.New("arbor: storage allocator failed")
)

// FatalError marks a programmer-misuse condition treated as a fatal
// policy violation: a nil argument where one is forbidden, an
// Unref with no matching edge, or (in principle) an edge allocation
// failure. These are never returned as errors — they panic, mirroring
// libnih's nih_assert/NIH_MUST abort-the-process convention — but the
// panic value is a typed FatalError so tests and top-level recover()
// handlers can inspect what went wrong via errors.As.
type FatalError struct {
	Op      string // the operation that detected the violation, e.g. "Unref"
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("arbor: fatal: %s: %s", e.Op, e.Message)
}

// fatalf logs a diagnostic at Error severity — the allocator does not
// call log.Fatal/os.Exit itself, it panics, and the caller's own
// process-wide recovery policy decides what happens next — then panics
// with a *FatalError. Every call site in this package that can reach a
// fatal policy violation routes through here so the diagnostic and the
// panic value never drift apart.
func fatalf(op, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.WithFields(log.Fields{
		"component": "arbor",
		"op":        op,
	}).Error("fatal policy violation: " + msg)
	panic(&FatalError{Op: op, Message: msg})
}
