package iospace

import (
	"github.com/scigolib/iospace/internal/device"
	"github.com/scigolib/iospace/internal/device/backend/file"
	"github.com/scigolib/iospace/internal/device/backend/memory"
	"github.com/scigolib/iospace/internal/device/backend/nbd"
)

// backends lists the recognizers in the fixed order they're tried: the
// memory and nbd handlers are narrow and unambiguous, so they run first;
// the file backend accepts any handler and must run last.
var backends = []device.Backend{
	memory.Backend,
	nbd.Backend,
	file.Backend,
}

// Registry holds the open spaces and the current-space cursor. The zero
// value is ready to use. DefaultRegistry is provided for callers that
// don't want to thread one through explicitly.
type Registry struct {
	head    *Space
	current *Space
	nextID  int

	// Logger receives best-effort diagnostics (e.g. a close failure).
	// Nil means no-op.
	Logger Logger
}

// DefaultRegistry is the package-level registry convenience callers can
// use instead of constructing their own.
var DefaultRegistry = &Registry{}

func (r *Registry) logger() Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return noopLogger{}
}

// Open opens handler with the given flags, recognizing it against the
// memory, nbd, and file backends in that order. If setCurrent is true, or
// this is the first space in the registry, it becomes the current space.
func (r *Registry) Open(handler string, flags Flags, setCurrent bool) (*Space, error) {
	var dev device.Device
	var code device.Code
	var normalized string

	for _, b := range backends {
		n, ok := b.Recognize(handler, flags)
		if !ok {
			continue
		}
		normalized = n
		dev, code = b.Open(n, flags)
		break
	}
	if dev == nil {
		if code == device.EInvalid {
			return nil, newError("Open", ErrFlags, nil)
		}
		return nil, newError("Open", ErrGeneric, nil)
	}

	r.nextID++
	s := &Space{
		id:      r.nextID,
		handler: normalized,
		dev:     dev,
		logger:  r.logger(),
		next:    r.head,
	}
	r.head = s
	if r.current == nil || setCurrent {
		r.current = s
	}
	return s, nil
}

// Close closes s and removes it from the registry. If s was the current
// space, the new head of the list (possibly nil) becomes current.
func (r *Registry) Close(s *Space) error {
	if s == nil {
		return newError("Close", ErrGeneric, nil)
	}

	if r.head == s {
		r.head = s.next
	} else {
		for p := r.head; p != nil; p = p.next {
			if p.next == s {
				p.next = s.next
				break
			}
		}
	}

	s.close()
	if r.current == s {
		r.current = r.head
	}
	s.next = nil
	return nil
}

// CloseAll closes every open space, emptying the registry.
func (r *Registry) CloseAll() {
	for r.head != nil {
		_ = r.Close(r.head)
	}
}

// Search returns the first open space whose handler equals handler, or
// nil if none matches.
func (r *Registry) Search(handler string) *Space {
	for s := r.head; s != nil; s = s.next {
		if s.handler == handler {
			return s
		}
	}
	return nil
}

// SearchByID returns the open space with the given id, or nil.
func (r *Registry) SearchByID(id int) *Space {
	for s := r.head; s != nil; s = s.next {
		if s.id == id {
			return s
		}
	}
	return nil
}

// Current returns the current space, or nil if none is open.
func (r *Registry) Current() *Space { return r.current }

// SetCurrent makes s the current space. s must already be open in r.
func (r *Registry) SetCurrent(s *Space) { r.current = s }

// Begin returns the first open space, for use with Next and End.
func (r *Registry) Begin() *Space { return r.head }

// Next returns the space after s in iteration order.
func (r *Registry) Next(s *Space) *Space {
	if s == nil {
		return nil
	}
	return s.next
}

// End reports whether s marks the end of iteration.
func (r *Registry) End(s *Space) bool { return s == nil }

// Map calls fn for every open space, in most-recently-opened-first
// order, stopping early if fn returns false.
func (r *Registry) Map(fn func(*Space) bool) {
	for s := r.head; s != nil; s = s.next {
		if !fn(s) {
			return
		}
	}
}
