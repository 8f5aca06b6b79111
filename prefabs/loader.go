package prefabs

import (
	"fmt"
	"time"

	"github.com/milk9111/runner/ecs/component"
	"github.com/milk9111/runner/model"
	"gopkg.in/yaml.v3"
)

// LoadModels parses a character definition document. The document is
// either a sequence of entries or a single entry mapping; an empty
// document yields no models.
func LoadModels(data []byte) ([]*model.AnimatedModel, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal: %w", err)
	}
	return decodeModels(&doc)
}

// LoadFile reads name from disk or the embedded definitions and parses it.
func LoadFile(name string) ([]*model.AnimatedModel, error) {
	doc, err := LoadSpec[yaml.Node](name)
	if err != nil {
		return nil, err
	}
	models, err := decodeModels(&doc)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return models, nil
}

// LoadRegistry loads name into a fresh registry.
func LoadRegistry(name string) (*model.Registry, error) {
	models, err := LoadFile(name)
	if err != nil {
		return nil, err
	}
	reg, err := model.NewRegistry(models...)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return reg, nil
}

func decodeModels(doc *yaml.Node) ([]*model.AnimatedModel, error) {
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}

	var specs []CharacterSpec
	switch root.Kind {
	case 0:
		return nil, nil
	case yaml.SequenceNode:
		if err := root.Decode(&specs); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var one CharacterSpec
		if err := root.Decode(&one); err != nil {
			return nil, err
		}
		specs = append(specs, one)
	default:
		return nil, fmt.Errorf("line %d: expected a character list or mapping", root.Line)
	}

	models := make([]*model.AnimatedModel, 0, len(specs))
	for i := range specs {
		m, err := BuildModel(&specs[i])
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

// BuildModel converts one parsed entry into a model. The first listed
// animation becomes the default clip; an entry without animations plays
// its whole grid as one range.
func BuildModel(spec *CharacterSpec) (*model.AnimatedModel, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	name := *spec.Name
	tile := *spec.TileSize

	layout := component.GridLayout{
		TileW:    tile[0],
		TileH:    tile[1],
		Rows:     *spec.Rows,
		Columns:  *spec.Columns,
		PaddingX: spec.Padding[0],
		PaddingY: spec.Padding[1],
		OffsetX:  spec.OffsetTiles[0]*tile[0] + spec.OffsetFixed[0],
		OffsetY:  spec.OffsetTiles[1]*tile[1] + spec.OffsetFixed[1],
	}
	if layout.Len() == 0 || layout.TileW <= 0 || layout.TileH <= 0 {
		return nil, fmt.Errorf("character %q: grid %vx%v tiles of %vx%v is empty", name, layout.Rows, layout.Columns, layout.TileW, layout.TileH)
	}

	m := &model.AnimatedModel{
		Name:  name,
		Sheet: model.SpriteSheet{Path: *spec.FilePath, Layout: layout},
		FlipX: spec.FlipX,
	}

	if len(spec.Animations) == 0 {
		m.Indices = &component.AnimationIndices{First: 0, Last: layout.Len() - 1}
		m.FrameDuration = model.DefaultFrameDuration
	} else {
		state := component.NewAnimationState()
		for _, a := range spec.Animations {
			for _, idx := range a.Indices {
				if idx >= layout.Len() {
					return nil, fmt.Errorf("character %q: animation %q: frame %d outside %d-tile grid", name, a.Name, idx, layout.Len())
				}
			}
			if err := state.AddClip(a.Name, a.Indices, seconds(a.Speed)); err != nil {
				return nil, fmt.Errorf("character %q: %w", name, err)
			}
			clip := state.Clips[a.Name]
			clip.Looped = a.looped()
			state.Clips[a.Name] = clip
		}
		m.Animation = state
		m.DefaultClip = spec.Animations[0].Name
		if err := state.QueueAnimation(m.DefaultClip, state.Clips[m.DefaultClip].Looped); err != nil {
			return nil, fmt.Errorf("character %q: %w", name, err)
		}
	}

	for i, c := range spec.Colliders {
		desc := component.ColliderDescriptor{
			Shape:   component.ColliderShape(c.Collider.Type),
			OffsetX: c.Translation[0],
			OffsetY: c.Translation[1],
			Sensor:  c.Sensor,
		}
		switch c.Collider.Type {
		case shapeCapsuleY:
			desc.Radius = c.Collider.Radius
			desc.HalfHeight = c.Collider.Height
		case shapeCuboid:
			desc.HalfWidth = c.Collider.HalfWidth
			desc.HalfHeight = c.Collider.HalfHeight
		case shapeBall:
			desc.Radius = c.Collider.Radius
		}
		if err := desc.Validate(); err != nil {
			return nil, fmt.Errorf("character %q: collider %d: %w", name, i, err)
		}
		m.Colliders = append(m.Colliders, desc)
	}
	return m, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
