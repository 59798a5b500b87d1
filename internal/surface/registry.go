// Package surface keeps the in-memory set of displayable surfaces and their visibility.
package surface

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/splashgate/internal/readiness"
)

// ErrUnknownSurface is returned when a handle no longer refers to a registered surface.
var ErrUnknownSurface = errors.New("unknown surface")

// Change is delivered to subscribers after a surface is shown or hidden.
type Change struct {
	Surface string
	Visible bool
}

type entry struct {
	handle  readiness.SurfaceHandle
	visible bool
}

// Registry is a readiness.Host backed by memory.
type Registry struct {
	mu          sync.Mutex
	surfaces    map[string]*entry
	subscribers []func(Change)
}

var _ readiness.Host = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]*entry)}
}

// Add registers a surface, replacing any surface with the same name.
func (r *Registry) Add(name string, visible bool) readiness.SurfaceHandle {
	h := readiness.SurfaceHandle{ID: uuid.NewString(), Name: name}
	r.mu.Lock()
	r.surfaces[name] = &entry{handle: h, visible: visible}
	r.mu.Unlock()
	return h
}

// Remove drops a surface. Handles to it stop working.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	delete(r.surfaces, name)
	r.mu.Unlock()
}

func (r *Registry) FindSurface(name string) (readiness.SurfaceHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.surfaces[name]
	if !ok {
		return readiness.SurfaceHandle{}, false
	}
	return e.handle, true
}

func (r *Registry) Hide(h readiness.SurfaceHandle) error {
	return r.setVisible(h, false)
}

func (r *Registry) Show(h readiness.SurfaceHandle) error {
	return r.setVisible(h, true)
}

// Visible reports whether the named surface exists and is shown.
func (r *Registry) Visible(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.surfaces[name]
	return ok && e.visible
}

// Names lists the registered surfaces in name order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.surfaces))
	for name := range r.surfaces {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Subscribe registers fn to be called after every visibility change.
// Callbacks run on the mutating goroutine, outside the registry lock.
func (r *Registry) Subscribe(fn func(Change)) {
	r.mu.Lock()
	r.subscribers = append(r.subscribers, fn)
	r.mu.Unlock()
}

func (r *Registry) setVisible(h readiness.SurfaceHandle, visible bool) error {
	r.mu.Lock()
	e, ok := r.surfaces[h.Name]
	if !ok || e.handle.ID != h.ID {
		r.mu.Unlock()
		return fmt.Errorf("%w %q", ErrUnknownSurface, h.Name)
	}
	e.visible = visible
	subs := make([]func(Change), len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.Unlock()

	for _, fn := range subs {
		fn(Change{Surface: h.Name, Visible: visible})
	}
	return nil
}
