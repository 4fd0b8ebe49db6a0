package components

import (
	"fmt"
	"sort"
	"sync"

	"github.com/entrhq/gridmap/pkg/table"
)

// Registry maps component references to insertion and filter handlers.
// It implements table.Services.
type Registry struct {
	mu        sync.RWMutex
	inserters map[table.ComponentRef]table.Inserter
	filterers map[table.ComponentRef]table.Filterer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		inserters: make(map[table.ComponentRef]table.Inserter),
		filterers: make(map[table.ComponentRef]table.Filterer),
	}
}

// RegisterInserter registers an insertion handler. An empty subtype is the
// fallback for every subtype of t.
func (r *Registry) RegisterInserter(t table.ComponentType, subtype string, ins table.Inserter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserters[table.ComponentRef{Type: t, Subtype: subtype}] = ins
}

// RegisterFilterer registers a filter handler. An empty subtype is the
// fallback for every subtype of t.
func (r *Registry) RegisterFilterer(t table.ComponentType, subtype string, f table.Filterer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filterers[table.ComponentRef{Type: t, Subtype: subtype}] = f
}

// Inserter resolves the insertion handler for ref, falling back to the
// handler registered without subtype.
func (r *Registry) Inserter(ref table.ComponentRef) (table.Inserter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ins, ok := r.inserters[ref]; ok {
		return ins, nil
	}
	if ins, ok := r.inserters[table.ComponentRef{Type: ref.Type}]; ok {
		return ins, nil
	}
	return nil, fmt.Errorf("%w: no insertion component %s registered", table.ErrConfiguration, ref)
}

// Filterer resolves the filter handler for ref, falling back to the handler
// registered without subtype.
func (r *Registry) Filterer(ref table.ComponentRef) (table.Filterer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.filterers[ref]; ok {
		return f, nil
	}
	if f, ok := r.filterers[table.ComponentRef{Type: ref.Type}]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: no filter component %s registered", table.ErrConfiguration, ref)
}

// Inserters lists the registered insertion components, sorted.
func (r *Registry) Inserters() []table.ComponentRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedRefs(r.inserters)
}

// Filterers lists the registered filter components, sorted.
func (r *Registry) Filterers() []table.ComponentRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedRefs(r.filterers)
}

func sortedRefs[V any](m map[table.ComponentRef]V) []table.ComponentRef {
	refs := make([]table.ComponentRef, 0, len(m))
	for ref := range m {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].String() < refs[j].String()
	})
	return refs
}
