// Package blob provides an in-process store of revocable references to
// binary media, mirroring the object-URL pattern: a consumer receives an
// opaque "blob:" reference it can dereference for preview or playback,
// and the owner revokes the reference deterministically when the media is
// superseded. Revocation never relies on garbage collection.
package blob

import (
	"sync"

	"github.com/google/uuid"
)

// RefScheme prefixes every reference issued by a Store.
const RefScheme = "blob:"

type object struct {
	data     []byte
	mimeType string
}

// Store maps revocable references to in-memory media buffers.
// It is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	objects map[string]object
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		objects: make(map[string]object),
	}
}

// Put registers a buffer and returns a new reference to it.
func (s *Store) Put(data []byte, mimeType string) string {
	ref := RefScheme + uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[ref] = object{data: data, mimeType: mimeType}
	return ref
}

// Get dereferences ref. It returns the buffer, its MIME type, and whether
// the reference is still live.
func (s *Store) Get(ref string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[ref]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.mimeType, true
}

// Revoke releases the buffer behind ref. It reports whether the reference
// was live; revoking an already-revoked or unknown reference is a no-op.
func (s *Store) Revoke(ref string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[ref]; !ok {
		return false
	}
	delete(s.objects, ref)
	return true
}

// Len returns the number of live references.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
