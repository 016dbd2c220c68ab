package container

import (
	"log/slog"
	"reflect"
	"sync"
)

// registry maps component names to descriptors, keeps registration order and
// enforces name uniqueness. It is mutable only until sealed; the first
// Build seals it implicitly.
type registry struct {
	descriptors map[string]*Descriptor
	order       []string
	sealed      bool
	mu          sync.RWMutex
	logger      *slog.Logger
}

func newRegistry(logger *slog.Logger) *registry {
	return &registry{
		descriptors: make(map[string]*Descriptor),
		logger:      logger,
	}
}

func (r *registry) register(d *Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.registerLocked(d)
}

// registerBatch registers all descriptors or none: every name is validated
// against the registry and within the batch before anything is added.
func (r *registry) registerBatch(descs []*Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return AlreadySealedError()
	}

	seen := make(map[string]bool, len(descs))
	for _, d := range descs {
		if _, exists := r.descriptors[d.name]; exists || seen[d.name] {
			return DuplicateNameError(d.name)
		}
		seen[d.name] = true
	}

	for _, d := range descs {
		if err := r.registerLocked(d); err != nil {
			return err
		}
	}
	return nil
}

func (r *registry) registerLocked(d *Descriptor) error {
	if r.sealed {
		return AlreadySealedError()
	}
	if d.name == "" {
		return ConfigurationError("component name cannot be empty", nil)
	}
	if _, exists := r.descriptors[d.name]; exists {
		return DuplicateNameError(d.name)
	}

	r.logger.Debug("Registering component", "name", d.name)
	r.descriptors[d.name] = d
	r.order = append(r.order, d.name)
	return nil
}

func (r *registry) seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.sealed {
		r.logger.Debug("Sealing registry", "components", len(r.order))
		r.sealed = true
	}
}

func (r *registry) isSealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

func (r *registry) find(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[name]
	return d, ok
}

// matching returns every descriptor satisfying the capability, in
// registration order. A nil capability matches every descriptor.
func (r *registry) matching(t reflect.Type) []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Descriptor
	for _, name := range r.order {
		if d := r.descriptors[name]; d.satisfies(t) {
			out = append(out, d)
		}
	}
	return out
}

// inOrder returns all descriptors in registration order.
func (r *registry) inOrder() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.descriptors[name])
	}
	return out
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
