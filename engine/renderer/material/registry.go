package material

import "sync"

// Handle refers to a material stored in a Registry. The zero Handle refers to nothing.
type Handle struct {
	id uint32
}

// IsValid reports whether the handle was issued by a registry.
func (h Handle) IsValid() bool { return h.id != 0 }

// ID returns the numeric identifier, stable for the registry's lifetime.
func (h Handle) ID() uint32 { return h.id }

type registry struct {
	mu *sync.Mutex

	next  uint32
	items map[uint32]Material
	order []uint32
}

// Registry owns the materials of a scene. Nodes store handles; every node holding
// the same handle shares one material instance.
type Registry interface {
	// Add stores a material and returns its handle.
	//
	// Parameters:
	//   - m: the material to store
	//
	// Returns:
	//   - Handle: a new handle for m
	Add(m Material) Handle

	// Get resolves a handle.
	//
	// Parameters:
	//   - h: the handle
	//
	// Returns:
	//   - Material: the stored material
	//   - bool: false when the handle is unknown
	Get(h Handle) (Material, bool)

	// Remove drops a material. Nodes still holding the handle draw nothing.
	Remove(h Handle)

	// Len returns the number of stored materials.
	Len() int

	// Each visits every material in insertion order.
	Each(fn func(Handle, Material))
}

var _ Registry = &registry{}

// NewRegistry creates an empty registry.
func NewRegistry() Registry {
	return &registry{
		mu:    &sync.Mutex{},
		items: make(map[uint32]Material),
	}
}

func (r *registry) Add(m Material) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.items[r.next] = m
	r.order = append(r.order, r.next)
	return Handle{id: r.next}
}

func (r *registry) Get(h Handle) (Material, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[h.id]
	return m, ok
}

func (r *registry) Remove(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[h.id]; !ok {
		return
	}
	delete(r.items, h.id)
	for i, id := range r.order {
		if id == h.id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *registry) Each(fn func(Handle, Material)) {
	r.mu.Lock()
	ids := append([]uint32(nil), r.order...)
	items := make([]Material, len(ids))
	for i, id := range ids {
		items[i] = r.items[id]
	}
	r.mu.Unlock()

	for i, id := range ids {
		fn(Handle{id: id}, items[i])
	}
}
