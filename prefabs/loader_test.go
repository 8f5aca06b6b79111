package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/runner/ecs/component"
)

const idleDoc = `
- name: hero
  file_path: sprites/hero.png
  tile_size: [16, 32]
  rows: 1
  columns: 9
  animations:
    - name: idle
      indices: [0, 1, 2]
      speed: 0.1
`

func TestLoadModelsIdleCycle(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []int
	}{
		{name: "looped by default", doc: idleDoc, want: []int{1, 2, 0}},
		{name: "not looped", doc: idleDoc + "      looped: false\n", want: []int{1, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models, err := LoadModels([]byte(tt.doc))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(models) != 1 {
				t.Fatalf("expected 1 model, got %d", len(models))
			}
			m := models[0]
			if m.Sheet.Layout.TileW != 16 || m.Sheet.Layout.TileH != 32 || m.Sheet.Layout.Len() != 9 {
				t.Fatalf("unexpected layout %+v", m.Sheet.Layout)
			}
			if m.DefaultClip != "idle" {
				t.Fatalf("expected default clip idle, got %q", m.DefaultClip)
			}

			state := m.Animation.Clone()
			for i, want := range tt.want {
				state.Advance(100 * time.Millisecond)
				if state.Cursor != want {
					t.Fatalf("advance %d: expected cursor %d, got %d", i, want, state.Cursor)
				}
			}
		})
	}
}

func TestLoadModelsShapes(t *testing.T) {
	doc := `
name: blob
file_path: sprites/blob.png
tile_size: [32, 32]
rows: 2
columns: 2
padding: [1, 1]
offset_tiles: [1, 0]
offset_fixed: [0, 3]
colliders:
  - collider:
      type: capsule_y
      radius: 8
      height: 6
    translation: [0, 2]
  - collider:
      type: cuboid
      half_width: 4
      half_height: 5
    sensor: true
  - collider:
      type: ball
      radius: 3
`
	models, err := LoadModels([]byte(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected a single mapping to load one model, got %d", len(models))
	}
	m := models[0]

	if m.Sheet.Layout.OffsetX != 32 || m.Sheet.Layout.OffsetY != 3 {
		t.Fatalf("unexpected offset %v,%v", m.Sheet.Layout.OffsetX, m.Sheet.Layout.OffsetY)
	}
	if m.Animation != nil || m.Indices == nil || *m.Indices != (component.AnimationIndices{First: 0, Last: 3}) {
		t.Fatalf("expected the whole grid as a range, got %+v", m.Indices)
	}

	want := []component.ColliderDescriptor{
		{Shape: component.ShapeCapsuleY, Radius: 8, HalfHeight: 6, OffsetY: 2},
		{Shape: component.ShapeCuboid, HalfWidth: 4, HalfHeight: 5, Sensor: true},
		{Shape: component.ShapeBall, Radius: 3},
	}
	if len(m.Colliders) != len(want) {
		t.Fatalf("expected %d colliders, got %d", len(want), len(m.Colliders))
	}
	for i := range want {
		if m.Colliders[i] != want[i] {
			t.Fatalf("collider %d: expected %+v, got %+v", i, want[i], m.Colliders[i])
		}
	}
}

func TestLoadModelsErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		target  error
		contain string
	}{
		{
			name:   "missing rows",
			doc:    "- name: x\n  file_path: a.png\n  tile_size: [8, 8]\n  columns: 2\n",
			target: ErrMissingField,
		},
		{
			name:   "missing name",
			doc:    "- file_path: a.png\n  tile_size: [8, 8]\n  rows: 1\n  columns: 2\n",
			target: ErrMissingField,
		},
		{
			name:    "unknown collider type",
			doc:     "- name: x\n  file_path: a.png\n  tile_size: [8, 8]\n  rows: 1\n  columns: 2\n  colliders:\n    - collider:\n        type: triangle\n",
			contain: "triangle",
		},
		{
			name:   "collider without type",
			doc:    "- name: x\n  file_path: a.png\n  tile_size: [8, 8]\n  rows: 1\n  columns: 2\n  colliders:\n    - collider:\n        radius: 2\n",
			target: ErrMissingField,
		},
		{
			name:   "zero sized collider",
			doc:    "- name: x\n  file_path: a.png\n  tile_size: [8, 8]\n  rows: 1\n  columns: 2\n  colliders:\n    - collider:\n        type: ball\n",
			target: component.ErrInvalidCollider,
		},
		{
			name:    "frame outside grid",
			doc:     "- name: x\n  file_path: a.png\n  tile_size: [8, 8]\n  rows: 1\n  columns: 2\n  animations:\n    - name: run\n      indices: [0, 5]\n      speed: 0.1\n",
			contain: "outside",
		},
		{
			name:   "zero speed",
			doc:    "- name: x\n  file_path: a.png\n  tile_size: [8, 8]\n  rows: 1\n  columns: 2\n  animations:\n    - name: run\n      indices: [0]\n",
			target: component.ErrEmptyClip,
		},
		{
			name:   "empty indices",
			doc:    "- name: x\n  file_path: a.png\n  tile_size: [8, 8]\n  rows: 1\n  columns: 2\n  animations:\n    - name: run\n      indices: []\n      speed: 0.1\n",
			target: component.ErrEmptyClip,
		},
		{
			name:    "empty grid",
			doc:     "- name: x\n  file_path: a.png\n  tile_size: [8, 8]\n  rows: 0\n  columns: 2\n",
			contain: "empty",
		},
		{
			name:    "malformed",
			doc:     "- name: [unterminated\n",
			contain: "unmarshal",
		},
		{
			name:    "scalar document",
			doc:     "just text\n",
			contain: "expected a character list",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadModels([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if tt.contain != "" && !strings.Contains(err.Error(), tt.contain) {
				t.Fatalf("expected %q in %v", tt.contain, err)
			}
		})
	}
}

func TestLoadModelsEmptyDocument(t *testing.T) {
	models, err := LoadModels(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 0 {
		t.Fatalf("expected no models, got %d", len(models))
	}
}

func TestEmbeddedDefinitions(t *testing.T) {
	reg, err := LoadRegistry("enemies.yaml")
	if err != nil {
		t.Fatalf("load enemies: %v", err)
	}
	for _, name := range []string{"slime", "bat", "totem"} {
		if _, ok := reg.Get(name); !ok {
			t.Fatalf("expected enemy %q", name)
		}
	}

	players, err := LoadFile("prefabs/player.yaml")
	if err != nil {
		t.Fatalf("load player: %v", err)
	}
	if len(players) != 1 || players[0].Name != "player" {
		t.Fatalf("unexpected players %+v", players)
	}
	for _, clip := range []string{"run", "jump"} {
		if !players[0].Animation.HasClip(clip) {
			t.Fatalf("player is missing clip %q", clip)
		}
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	old := Dir
	Dir = dir
	t.Cleanup(func() { Dir = old })

	doc := "- name: only\n  file_path: a.png\n  tile_size: [8, 8]\n  rows: 1\n  columns: 1\n"
	if err := os.WriteFile(filepath.Join(dir, "enemies.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	reg, err := LoadRegistry("enemies.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if names := reg.Names(); len(names) != 1 || names[0] != "only" {
		t.Fatalf("expected the disk copy, got %v", names)
	}
	if _, err := LoadFile("missing.yaml"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
