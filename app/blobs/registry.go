// Package blobs hands out short-lived URLs for binaries that can only be
// fetched with the user's token.
package blobs

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rahmadjon0038/new-lms/app/client"
)

// Viewer identifies one open material viewer: the user and the lesson.
type Viewer struct {
	Owner  string
	Lesson int64
}

type entry struct {
	blob    *client.Blob
	owner   string
	viewer  Viewer
	slot    string
	expires time.Time
}

type slotKey struct {
	viewer Viewer
	slot   string
}

// Registry maps opaque handles to blobs. Each viewer slot owns at most one
// live handle.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	handles map[string]*entry
	slots   map[slotKey]string
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:     ttl,
		now:     time.Now,
		handles: make(map[string]*entry),
		slots:   make(map[slotKey]string),
	}
}

// Open registers blob for a viewer slot and returns its handle. The handle
// previously held by the slot is revoked.
func (r *Registry) Open(v Viewer, slot string, blob *client.Blob) string {
	h := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()

	k := slotKey{viewer: v, slot: slot}
	if old, ok := r.slots[k]; ok {
		delete(r.handles, old)
	}
	r.handles[h] = &entry{
		blob:    blob,
		owner:   v.Owner,
		viewer:  v,
		slot:    slot,
		expires: r.now().Add(r.ttl),
	}
	r.slots[k] = h
	return h
}

// Get returns the blob behind a handle if it is live and belongs to owner.
func (r *Registry) Get(handle, owner string) (*client.Blob, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.handles[handle]
	if !ok || e.owner != owner {
		return nil, false
	}
	if r.ttl > 0 && r.now().After(e.expires) {
		r.drop(handle, e)
		return nil, false
	}
	return e.blob, true
}

// Close revokes every handle of a viewer.
func (r *Registry) Close(v Viewer) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for k, h := range r.slots {
		if k.viewer == v {
			delete(r.handles, h)
			delete(r.slots, k)
			n++
		}
	}
	return n
}

// CloseOwner revokes every handle of a user, e.g. on logout.
func (r *Registry) CloseOwner(owner string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for h, e := range r.handles {
		if e.owner == owner {
			r.drop(h, e)
			n++
		}
	}
	return n
}

func (r *Registry) Revoke(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.handles[handle]; ok {
		r.drop(handle, e)
	}
}

// Sweep revokes expired handles and returns how many were dropped.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for h, e := range r.handles {
		if now.After(e.expires) {
			r.drop(h, e)
			n++
		}
	}
	return n
}

func (r *Registry) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

// LiveFor counts the live handles of a viewer.
func (r *Registry) LiveFor(v Viewer) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k := range r.slots {
		if k.viewer == v {
			n++
		}
	}
	return n
}

// Handle returns the live handle of a viewer slot, if any.
func (r *Registry) Handle(v Viewer, slot string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.slots[slotKey{viewer: v, slot: slot}]
	return h, ok
}

// caller holds mu
func (r *Registry) drop(handle string, e *entry) {
	delete(r.handles, handle)
	k := slotKey{viewer: e.viewer, slot: e.slot}
	if r.slots[k] == handle {
		delete(r.slots, k)
	}
}
