package registry

import (
	"fmt"
	"sync"

	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

// Registry keeps responders keyed by type in registration order.
type Registry struct {
	mu     sync.RWMutex
	order  []contractx.AgentType
	byType map[contractx.AgentType]contractx.Responder
}

func New() *Registry {
	return &Registry{
		byType: make(map[contractx.AgentType]contractx.Responder, 4),
	}
}

// Register adds a responder. A responder of an already registered type replaces
// the previous instance and keeps its position.
func (r *Registry) Register(resp contractx.Responder) error {
	if resp == nil {
		return fmt.Errorf("%w: responder is nil", contractx.ErrValidation)
	}
	agentType := resp.Info().Type
	if agentType == "" {
		return fmt.Errorf("%w: responder %q has no type", contractx.ErrValidation, resp.Info().Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byType[agentType]; !ok {
		r.order = append(r.order, agentType)
	}
	r.byType[agentType] = resp
	return nil
}

// Remove deletes the responder of the given type and reports whether one existed.
func (r *Registry) Remove(agentType contractx.AgentType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byType[agentType]; !ok {
		return false
	}
	delete(r.byType, agentType)
	for i, t := range r.order {
		if t == agentType {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Registry) Get(agentType contractx.AgentType) (contractx.Responder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	resp, ok := r.byType[agentType]
	return resp, ok
}

func (r *Registry) Has(agentType contractx.AgentType) bool {
	_, ok := r.Get(agentType)
	return ok
}

// Snapshot returns the responders in registration order. The slice is a copy,
// so callers can iterate without holding the lock.
func (r *Registry) Snapshot() []contractx.Responder {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contractx.Responder, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.byType[t])
	}
	return out
}

func (r *Registry) Descriptors() []contractx.Descriptor {
	snapshot := r.Snapshot()
	out := make([]contractx.Descriptor, 0, len(snapshot))
	for _, resp := range snapshot {
		out = append(out, resp.Info())
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
