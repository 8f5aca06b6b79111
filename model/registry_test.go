package model

import (
	"math/rand/v2"
	"testing"
)

func TestRegistryInsertAndGet(t *testing.T) {
	r, err := NewRegistry(testModel(t, "slime"), testModel(t, "bat"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 models, got %d", r.Len())
	}
	if m, ok := r.Get("bat"); !ok || m.Name != "bat" {
		t.Fatalf("expected bat, got %v %v", m, ok)
	}
	if _, ok := r.Get("totem"); ok {
		t.Fatalf("did not expect totem")
	}

	if err := r.Insert(testModel(t, "slime")); err == nil {
		t.Fatalf("expected duplicate name to fail")
	}
	if err := r.Insert(&AnimatedModel{}); err == nil {
		t.Fatalf("expected empty name to fail")
	}
	if _, err := NewRegistry(testModel(t, "a"), testModel(t, "a")); err == nil {
		t.Fatalf("expected duplicate names to fail construction")
	}
}

func TestRegistryTake(t *testing.T) {
	r, err := NewRegistry(testModel(t, "player"), testModel(t, "slime"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	m, ok := r.Take("player")
	if !ok || m.Name != "player" {
		t.Fatalf("expected to take player, got %v %v", m, ok)
	}
	if _, ok := r.Take("player"); ok {
		t.Fatalf("second take should fail")
	}
	if names := r.Names(); len(names) != 1 || names[0] != "slime" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestRegistryRandomName(t *testing.T) {
	var empty Registry
	if _, ok := empty.RandomName(rand.New(rand.NewPCG(1, 2))); ok {
		t.Fatalf("empty registry should not pick")
	}

	r, err := NewRegistry(testModel(t, "slime"), testModel(t, "bat"), testModel(t, "totem"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	counts := map[string]int{}
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 300; i++ {
		name, ok := r.RandomName(rng)
		if !ok {
			t.Fatalf("expected a pick")
		}
		counts[name]++
	}
	for _, name := range r.Names() {
		if counts[name] == 0 {
			t.Fatalf("%s never picked: %v", name, counts)
		}
	}

	first := rand.New(rand.NewPCG(3, 3))
	second := rand.New(rand.NewPCG(3, 3))
	for i := 0; i < 20; i++ {
		a, _ := r.RandomName(first)
		b, _ := r.RandomName(second)
		if a != b {
			t.Fatalf("same seed gave %s and %s", a, b)
		}
	}
}

func TestRegistryReplace(t *testing.T) {
	r, err := NewRegistry(testModel(t, "slime"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	next, err := NewRegistry(testModel(t, "bat"), testModel(t, "totem"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	r.Replace(next)
	if _, ok := r.Get("slime"); ok {
		t.Fatalf("slime should be gone")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 models, got %d", r.Len())
	}

	next.Take("bat")
	if _, ok := r.Get("bat"); !ok {
		t.Fatalf("replace should copy, not alias")
	}

	r.Replace(nil)
	if r.Len() != 0 {
		t.Fatalf("expected empty registry")
	}
}
