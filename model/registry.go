package model

import (
	"fmt"
	"math/rand/v2"
)

// Registry maps model names to loaded models, remembering insertion order so
// random picks are reproducible for a given seed.
type Registry struct {
	order  []string
	models map[string]*AnimatedModel
}

func NewRegistry(models ...*AnimatedModel) (*Registry, error) {
	r := &Registry{models: make(map[string]*AnimatedModel, len(models))}
	for _, m := range models {
		if err := r.Insert(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Insert adds m, rejecting duplicate or empty names.
func (r *Registry) Insert(m *AnimatedModel) error {
	if m == nil || m.Name == "" {
		return fmt.Errorf("model: registry insert: model needs a name")
	}
	if r.models == nil {
		r.models = make(map[string]*AnimatedModel)
	}
	if _, exists := r.models[m.Name]; exists {
		return fmt.Errorf("model: registry insert %q: duplicate name", m.Name)
	}
	r.order = append(r.order, m.Name)
	r.models[m.Name] = m
	return nil
}

func (r *Registry) Get(name string) (*AnimatedModel, bool) {
	if r == nil {
		return nil, false
	}
	m, ok := r.models[name]
	return m, ok
}

// Take removes and returns the named model.
func (r *Registry) Take(name string) (*AnimatedModel, bool) {
	m, ok := r.Get(name)
	if !ok {
		return nil, false
	}
	delete(r.models, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return m, true
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Names returns the model names in insertion order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// RandomName picks a name uniformly. It reports false for an empty registry.
func (r *Registry) RandomName(rng *rand.Rand) (string, bool) {
	if r.Len() == 0 || rng == nil {
		return "", false
	}
	return r.order[rng.IntN(len(r.order))], true
}

// Replace swaps the registry contents for other's.
func (r *Registry) Replace(other *Registry) {
	if r == nil {
		return
	}
	if other == nil {
		r.order = nil
		r.models = make(map[string]*AnimatedModel)
		return
	}
	r.order = append([]string(nil), other.order...)
	r.models = make(map[string]*AnimatedModel, len(other.models))
	for k, v := range other.models {
		r.models[k] = v
	}
}
