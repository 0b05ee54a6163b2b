package component

import (
	"fmt"
	"sync/atomic"
)

// Registry creates and looks up component instances by stable id. It is an
// explicit context object owned by the embedding runtime: passing it
// through the render/reconcile call chain keeps the reconciler free of
// ambient global state.
type Registry struct {
	instances map[string]*Instance
	idCounter atomic.Uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[string]*Instance)}
}

// NewInstance creates and registers an instance with a generated id.
func (r *Registry) NewInstance(typeName string, input any, render RenderFunc, hooks Hooks) *Instance {
	id := fmt.Sprintf("c%d", r.idCounter.Add(1))
	return r.register(id, typeName, input, render, hooks)
}

// GetOrCreate returns the instance registered under id, creating it when
// absent. A live instance is reused across re-renders while its id keeps
// appearing; input is refreshed on reuse.
func (r *Registry) GetOrCreate(id, typeName string, input any, render RenderFunc, hooks Hooks) *Instance {
	if inst, ok := r.instances[id]; ok && !inst.destroyed {
		inst.Input = input
		return inst
	}
	return r.register(id, typeName, input, render, hooks)
}

func (r *Registry) register(id, typeName string, input any, render RenderFunc, hooks Hooks) *Instance {
	inst := &Instance{
		id:       id,
		typeName: typeName,
		Input:    input,
		render:   render,
		hooks:    hooks,
	}
	r.instances[id] = inst
	return inst
}

// Lookup returns the instance registered under id.
func (r *Registry) Lookup(id string) (*Instance, bool) {
	inst, ok := r.instances[id]
	return inst, ok
}

// Remove destroys the instance registered under id and forgets it.
func (r *Registry) Remove(id string) {
	if inst, ok := r.instances[id]; ok {
		inst.Destroy()
		delete(r.instances, id)
	}
}

// Len returns the number of registered instances.
func (r *Registry) Len() int {
	return len(r.instances)
}
