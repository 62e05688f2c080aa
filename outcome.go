package videogen

import "github.com/mhpenta/videogen/blob"

// Phase is the lifecycle state of the session's current generation.
type Phase string

const (
	// PhaseIdle means no generation has run yet, or the session was reset.
	PhaseIdle Phase = "idle"

	// PhasePending means a generation is in flight.
	PhasePending Phase = "pending"

	// PhaseReady means the latest generation produced a playable clip.
	PhaseReady Phase = "ready"

	// PhaseFailed means the latest generation terminated with an error.
	PhaseFailed Phase = "failed"
)

// Outcome is the observable state of the session's single generation slot.
type Outcome struct {
	// Phase of the current generation.
	Phase Phase

	// Media is the locally dereferenceable clip of a Ready outcome.
	Media *LocalMediaHandle

	// RemoteHandle is the remote reference of a Ready clip. Feed it to
	// Request.SetInputVideoHandle to extend the clip.
	RemoteHandle string

	// Reason is the user-safe failure message of a Failed outcome.
	Reason string
}

// LocalMediaHandle wraps generated clip bytes behind a revocable
// dereferencing identifier. Exactly one handle is live per session; the
// Session revokes the previous one before publishing a successor.
type LocalMediaHandle struct {
	store *blob.Store
	ref   string
	mime  string
	size  int
}

func newLocalMediaHandle(store *blob.Store, data []byte, mimeType string) *LocalMediaHandle {
	return &LocalMediaHandle{
		store: store,
		ref:   store.Put(data, mimeType),
		mime:  mimeType,
		size:  len(data),
	}
}

// Ref returns the dereferencing identifier (a "blob:" reference).
func (h *LocalMediaHandle) Ref() string {
	return h.ref
}

// MIMEType of the clip.
func (h *LocalMediaHandle) MIMEType() string {
	return h.mime
}

// Size is the clip's byte length.
func (h *LocalMediaHandle) Size() int {
	return h.size
}

// Bytes dereferences the handle. It returns nil after revocation.
func (h *LocalMediaHandle) Bytes() []byte {
	data, _, ok := h.store.Get(h.ref)
	if !ok {
		return nil
	}
	return data
}

// Live reports whether the handle still dereferences.
func (h *LocalMediaHandle) Live() bool {
	_, _, ok := h.store.Get(h.ref)
	return ok
}

// Revoke releases the referenced buffer. Safe to call more than once.
func (h *LocalMediaHandle) Revoke() {
	h.store.Revoke(h.ref)
}
