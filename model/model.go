package model

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/runner/ecs"
	"github.com/milk9111/runner/ecs/component"
)

// DefaultFrameDuration paces models that play their whole sheet as a
// single range.
const DefaultFrameDuration = 100 * time.Millisecond

// TextureSource resolves sprite sheet paths to loaded images.
type TextureSource interface {
	Texture(path string) (*ebiten.Image, error)
}

type SpriteSheet struct {
	Path   string
	Layout component.GridLayout
}

// AnimatedModel is a loaded character definition. It is never mutated after
// loading; Spawn copies everything an entity may change.
type AnimatedModel struct {
	Name  string
	Sheet SpriteSheet
	// Animation holds the named clips. When nil, Indices plays the sheet
	// as one looping range.
	Animation     *component.AnimationState
	Indices       *component.AnimationIndices
	FrameDuration time.Duration
	DefaultClip   string
	Colliders     []component.ColliderDescriptor
	FlipX         bool
}

// Validate checks the model can be spawned.
func (m *AnimatedModel) Validate() error {
	if m == nil {
		return fmt.Errorf("model: nil model")
	}
	if m.Sheet.Layout.Len() == 0 {
		return fmt.Errorf("model %q: empty sprite sheet grid", m.Name)
	}
	if m.Animation == nil && m.Indices == nil {
		return fmt.Errorf("model %q: no animation", m.Name)
	}
	if m.Animation != nil && m.DefaultClip != "" && !m.Animation.HasClip(m.DefaultClip) {
		return fmt.Errorf("model %q: default clip %q: %w", m.Name, m.DefaultClip, component.ErrUnknownClip)
	}
	for i, c := range m.Colliders {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("model %q: collider %d: %w", m.Name, i, err)
		}
	}
	return nil
}

// Spawn attaches the model's sprite, an independent animation state playing
// the default clip and one collider child entity per descriptor to e.
// Colliders are validated before anything is attached.
func (m *AnimatedModel) Spawn(w *ecs.World, e ecs.Entity, textures TextureSource) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if !ecs.IsAlive(w, e) {
		return fmt.Errorf("model %q: spawn into %s: %w", m.Name, e, component.ErrEntityNotAlive)
	}

	var img *ebiten.Image
	if textures != nil {
		var err error
		img, err = textures.Texture(m.Sheet.Path)
		if err != nil {
			return fmt.Errorf("model %q: texture %q: %w", m.Name, m.Sheet.Path, err)
		}
	}

	sprite := &component.Sprite{
		Image:      img,
		UseSource:  true,
		OriginX:    m.Sheet.Layout.TileW / 2,
		OriginY:    m.Sheet.Layout.TileH / 2,
		FacingLeft: m.FlipX,
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.SpriteSheetComponent.Kind(), &component.SpriteSheet{Layout: m.Sheet.Layout}); err != nil {
		return err
	}

	if m.Animation != nil {
		state := m.Animation.Clone()
		if m.DefaultClip != "" {
			if err := state.QueueAnimation(m.DefaultClip, state.Clips[m.DefaultClip].Looped); err != nil {
				return fmt.Errorf("model %q: %w", m.Name, err)
			}
		}
		sprite.Source = m.Sheet.Layout.Frame(state.Frame())
		if err := ecs.Add(w, e, component.AnimationComponent.Kind(), state); err != nil {
			return err
		}
	} else {
		dur := m.FrameDuration
		if dur <= 0 {
			dur = DefaultFrameDuration
		}
		ranged := &component.RangeAnimation{
			Indices: *m.Indices,
			Timer:   component.AnimationTimer{Duration: dur},
			Current: m.Indices.First,
		}
		sprite.Source = m.Sheet.Layout.Frame(ranged.Current)
		if err := ecs.Add(w, e, component.RangeAnimationComponent.Kind(), ranged); err != nil {
			return err
		}
	}

	children, ok := ecs.Get(w, e, component.ChildrenComponent.Kind())
	if !ok {
		children = &component.Children{}
		if err := ecs.Add(w, e, component.ChildrenComponent.Kind(), children); err != nil {
			return err
		}
	}
	for _, desc := range m.Colliders {
		child := ecs.CreateEntity(w)
		children.Add(child.Raw())
		if err := ecs.Add(w, child, component.ColliderChildComponent.Kind(), &component.ColliderChild{
			Owner:      e.Raw(),
			Descriptor: desc,
		}); err != nil {
			return err
		}
		if err := ecs.Add(w, child, component.CollisionEventsComponent.Kind(), &component.CollisionEvents{}); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy, used when a registry is rebuilt.
func (m *AnimatedModel) Clone() *AnimatedModel {
	if m == nil {
		return nil
	}
	out := *m
	out.Animation = m.Animation.Clone()
	if m.Indices != nil {
		idx := *m.Indices
		out.Indices = &idx
	}
	out.Colliders = append([]component.ColliderDescriptor(nil), m.Colliders...)
	return &out
}
