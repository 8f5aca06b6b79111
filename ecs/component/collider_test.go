package component

import (
	"errors"
	"image"
	"testing"
)

func TestColliderValidate(t *testing.T) {
	tests := []struct {
		name    string
		desc    ColliderDescriptor
		wantErr bool
	}{
		{name: "capsule", desc: ColliderDescriptor{Shape: ShapeCapsuleY, Radius: 8, HalfHeight: 6}},
		{name: "capsule without segment", desc: ColliderDescriptor{Shape: ShapeCapsuleY, Radius: 8}},
		{name: "capsule without radius", desc: ColliderDescriptor{Shape: ShapeCapsuleY, HalfHeight: 6}, wantErr: true},
		{name: "cuboid", desc: ColliderDescriptor{Shape: ShapeCuboid, HalfWidth: 4, HalfHeight: 2}},
		{name: "flat cuboid", desc: ColliderDescriptor{Shape: ShapeCuboid, HalfWidth: 4}, wantErr: true},
		{name: "ball", desc: ColliderDescriptor{Shape: ShapeBall, Radius: 1}},
		{name: "negative ball", desc: ColliderDescriptor{Shape: ShapeBall, Radius: -1}, wantErr: true},
		{name: "unknown", desc: ColliderDescriptor{Shape: "triangle", Radius: 1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCollider) {
					t.Fatalf("expected ErrInvalidCollider, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLowestBottom(t *testing.T) {
	descs := []ColliderDescriptor{
		{Shape: ShapeCapsuleY, Radius: 8, HalfHeight: 6, OffsetY: 2},
		{Shape: ShapeCuboid, HalfWidth: 4, HalfHeight: 3, OffsetY: -10},
		{Shape: ShapeBall, Radius: 5, OffsetY: 4},
	}
	if got := LowestBottom(descs); got != 16 {
		t.Fatalf("expected 16, got %v", got)
	}
	if got := LowestBottom(nil); got != 0 {
		t.Fatalf("expected 0 for no colliders, got %v", got)
	}
}

func TestCollisionLayerDefaults(t *testing.T) {
	var l CollisionLayer
	if l.Categories() != uint32(GroupCommon) {
		t.Fatalf("expected common membership, got %b", l.Categories())
	}
	if l.Mask() != ^uint32(0) {
		t.Fatalf("expected full mask, got %b", l.Mask())
	}

	l = CollisionLayer{Memberships: GroupEnemy, Filters: GroupWall | GroupPlayer}
	if l.Categories() != uint32(GroupEnemy) || l.Mask() != uint32(GroupWall|GroupPlayer) {
		t.Fatalf("unexpected layer bits %b/%b", l.Categories(), l.Mask())
	}
}

func TestGridLayoutFrame(t *testing.T) {
	g := GridLayout{TileW: 16, TileH: 32, Rows: 2, Columns: 3, PaddingX: 2, PaddingY: 1, OffsetX: 4, OffsetY: 8}
	if g.Len() != 6 {
		t.Fatalf("expected 6 tiles, got %d", g.Len())
	}

	tests := []struct {
		index int
		want  image.Rectangle
	}{
		{0, image.Rect(4, 8, 20, 40)},
		{2, image.Rect(40, 8, 56, 40)},
		{4, image.Rect(22, 41, 38, 73)},
		{6, image.Rectangle{}},
		{-1, image.Rectangle{}},
	}
	for _, tt := range tests {
		if got := g.Frame(tt.index); got != tt.want {
			t.Fatalf("frame %d: expected %v, got %v", tt.index, tt.want, got)
		}
	}
}
