package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/runner/ecs/component"
)

func spawnWithChildren(t *testing.T, w *World, n int) (Entity, []Entity) {
	t.Helper()
	parent := CreateEntity(w)
	children := &component.Children{}
	kids := make([]Entity, 0, n)
	for i := 0; i < n; i++ {
		c := CreateEntity(w)
		if err := Add(w, c, component.ColliderChildComponent.Kind(), &component.ColliderChild{Owner: parent.Raw()}); err != nil {
			t.Fatal(err)
		}
		children.Add(c.Raw())
		kids = append(kids, c)
	}
	if err := Add(w, parent, component.ChildrenComponent.Kind(), children); err != nil {
		t.Fatal(err)
	}
	return parent, kids
}

func TestCommandsDespawnRecursive(t *testing.T) {
	w := NewWorld()
	parent, kids := spawnWithChildren(t, w, 2)
	other, otherKids := spawnWithChildren(t, w, 1)

	var cmds Commands
	cmds.Despawn(parent)
	cmds.Despawn(parent)
	if !IsAlive(w, parent) {
		t.Fatalf("despawn must be deferred until Apply")
	}
	cmds.Apply(w)

	if IsAlive(w, parent) {
		t.Fatalf("parent still alive")
	}
	for _, k := range kids {
		if IsAlive(w, k) {
			t.Fatalf("child %s still alive", k)
		}
	}
	if !IsAlive(w, other) || !IsAlive(w, otherKids[0]) {
		t.Fatalf("unrelated entity tree was despawned")
	}
	if cmds.Len() != 0 {
		t.Fatalf("expected queue drained, got %d", cmds.Len())
	}
}

func TestCommandsSpawn(t *testing.T) {
	h := component.NewComponent[int]()

	tests := []struct {
		name      string
		build     func(*World, Entity) error
		wantAlive int
	}{
		{
			name: "success",
			build: func(w *World, e Entity) error {
				return Add(w, e, h.Kind(), intPtr(7))
			},
			wantAlive: 1,
		},
		{
			name: "failure_cleans_up",
			build: func(w *World, e Entity) error {
				if err := Add(w, e, h.Kind(), intPtr(7)); err != nil {
					return err
				}
				return errors.New("boom")
			},
			wantAlive: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld()
			var cmds Commands
			cmds.Spawn(tc.name, tc.build)
			if w.Len() != 0 {
				t.Fatalf("spawn must be deferred until Apply")
			}
			cmds.Apply(w)
			if w.Len() != tc.wantAlive {
				t.Fatalf("expected %d live entities, got %d", tc.wantAlive, w.Len())
			}
		})
	}
}

func TestCommandsRunInRequestOrder(t *testing.T) {
	h := component.NewComponent[int]()
	w := NewWorld()
	var cmds Commands

	cmds.Spawn("late", func(w *World, e Entity) error {
		return Add(w, e, h.Kind(), intPtr(1))
	})
	seen := -1
	cmds.Do("count", func(w *World) {
		seen = len(w.Query(h.Kind().ID()))
	})
	cmds.Apply(w)

	if seen != 1 {
		t.Fatalf("expected deferred op to see the earlier spawn, saw %d", seen)
	}
}
