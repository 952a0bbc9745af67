package onboardingweb

import (
	"sync"

	"tapcard/internal/onboarding"
)

// Registry keeps per-session onboarding machines in memory. Wizard state is
// deliberately not persisted; an abandoned session just starts over.
type Registry struct {
	mu       sync.Mutex
	machines map[string]*onboarding.Machine
}

func NewRegistry() *Registry {
	return &Registry{machines: make(map[string]*onboarding.Machine)}
}

// GetOrCreate returns the machine for a session key, creating it on first use.
func (r *Registry) GetOrCreate(key string, create func() *onboarding.Machine) *onboarding.Machine {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.machines[key]; ok {
		return m
	}
	m := create()
	r.machines[key] = m
	return m
}

// Drop removes the machine for a session key, typically after completion.
func (r *Registry) Drop(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.machines, key)
}
