// Package storage implements the allocator's Storage Layer: acquiring,
// resizing, and releasing the raw byte blocks that every arbor.Object's
// payload is backed by.
//
// The layer is intentionally thin. It knows nothing about parents,
// children, or destructors — that is the Reference Graph's and the
// Lifecycle Engine's job. All it owns is a pluggable Allocator, installed
// once at process start and never swapped out afterward: replacing it
// while allocations exist is undefined, exactly as libnih's
// __nih_malloc/__nih_realloc/__nih_free function-pointer slots behave.
package storage

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrOutOfMemory is returned by an Allocator when the underlying byte
// source cannot satisfy a request. It is a recoverable condition: callers
// surface it as a nil return, never a panic.
var ErrOutOfMemory = errors.New("storage: out of memory")

// Allocator is the pluggable facade over the raw byte source. A default,
// Go-runtime-backed implementation is installed at package init.
type Allocator interface {
	// Alloc returns a new block of at least n usable bytes.
	Alloc(n int) ([]byte, error)
	// Realloc grows or shrinks buf to at least n usable bytes, preserving
	// its content up to min(len(buf), n). buf may or may not be reused.
	Realloc(buf []byte, n int) ([]byte, error)
	// Free releases buf. The default allocator's Free is a no-op (the Go
	// garbage collector reclaims it once unreferenced); a custom
	// Allocator backed by an external arena may do real work here.
	Free(buf []byte)
}

// defaultAllocator backs Object payloads with ordinary Go heap slices.
// It fails only for a negative size (Go's allocator panics on true
// exhaustion rather than returning an error), but the interface keeps the
// failure path real for
// callers who plug in a bounded or simulated Allocator.
type defaultAllocator struct{}

func (defaultAllocator) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("storage: negative size %d", n)
	}

	return make([]byte, n), nil
}

func (defaultAllocator) Realloc(buf []byte, n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("storage: negative size %d", n)
	}
	if n <= cap(buf) {
		return buf[:n], nil
	}
	grown := make([]byte, n)
	copy(grown, buf)

	return grown, nil
}

func (defaultAllocator) Free([]byte) {
	// Nothing to do: the Go runtime reclaims the backing array once the
	// last reference (held by the freed Object) is dropped.
}

var (
	muSlot  sync.Mutex
	current Allocator = defaultAllocator{}
	swapped           = false
)

// SetAllocator replaces the process-wide Allocator. Per the storage slot
// contract inherited from the original C allocator, this is expected to be
// called at most once, before the first Alloc, and never while live
// objects reference blocks from the previous Allocator. A second call is
// logged as a diagnostic (it is not undefined behavior to call it, but the
// resulting mixed-allocator state is the caller's responsibility).
func SetAllocator(a Allocator) {
	muSlot.Lock()
	defer muSlot.Unlock()

	if a == nil {
		panic("storage: SetAllocator(nil)")
	}
	if swapped {
		log.WithField("component", "storage").
			Warn("allocator slot replaced a second time; this is undefined if prior allocations are still live")
	}
	current = a
	swapped = true
}

// Alloc requests a block of at least n usable bytes from the current
// Allocator.
func Alloc(n int) ([]byte, error) {
	muSlot.Lock()
	a := current
	muSlot.Unlock()

	buf, err := a.Alloc(n)
	if err != nil {
		return nil, errors.Wrap(err, "storage: alloc failed")
	}

	return buf, nil
}

// Realloc resizes buf to at least n usable bytes using the current
// Allocator.
func Realloc(buf []byte, n int) ([]byte, error) {
	muSlot.Lock()
	a := current
	muSlot.Unlock()

	grown, err := a.Realloc(buf, n)
	if err != nil {
		return nil, errors.Wrap(err, "storage: realloc failed")
	}

	return grown, nil
}

// Free releases buf back to the current Allocator.
func Free(buf []byte) {
	muSlot.Lock()
	a := current
	muSlot.Unlock()

	a.Free(buf)
}

// SizeOf returns the usable byte length of payload: the allocator-rounded
// capacity, which may exceed the size originally requested. Callers are
// entitled to treat the excess as usable capacity, per the contract this
// layer shares with the Lifecycle Engine.
func SizeOf(payload []byte) int {
	return cap(payload)
}
