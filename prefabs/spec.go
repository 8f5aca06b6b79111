package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var ErrMissingField = errors.New("prefabs: missing required field")

// CharacterSpec is one entry of a character definition file. Pointer fields
// are required; the rest default to their zero value.
type CharacterSpec struct {
	Name        *string         `yaml:"name"`
	FilePath    *string         `yaml:"file_path"`
	TileSize    *[2]float64     `yaml:"tile_size"`
	Rows        *int            `yaml:"rows"`
	Columns     *int            `yaml:"columns"`
	Padding     [2]float64      `yaml:"padding"`
	OffsetTiles [2]float64      `yaml:"offset_tiles"`
	OffsetFixed [2]float64      `yaml:"offset_fixed"`
	FlipX       bool            `yaml:"flip_x"`
	Animations  []AnimationSpec `yaml:"animations"`
	Colliders   []ColliderSpec  `yaml:"colliders"`
}

func (c *CharacterSpec) validate() error {
	missing := func(field string) error {
		name := "<unnamed>"
		if c.Name != nil {
			name = *c.Name
		}
		return fmt.Errorf("character %q: %s: %w", name, field, ErrMissingField)
	}
	switch {
	case c.Name == nil || *c.Name == "":
		return missing("name")
	case c.FilePath == nil:
		return missing("file_path")
	case c.TileSize == nil:
		return missing("tile_size")
	case c.Rows == nil:
		return missing("rows")
	case c.Columns == nil:
		return missing("columns")
	}
	return nil
}

type AnimationSpec struct {
	Name    string  `yaml:"name"`
	Indices []int   `yaml:"indices"`
	Speed   float64 `yaml:"speed"`
	// Looped defaults to true when omitted.
	Looped *bool `yaml:"looped"`
}

func (a AnimationSpec) looped() bool {
	return a.Looped == nil || *a.Looped
}

type ColliderSpec struct {
	Collider    ShapeSpec  `yaml:"collider"`
	Translation [2]float64 `yaml:"translation"`
	Sensor      bool       `yaml:"sensor"`
}

const (
	shapeCapsuleY = "capsule_y"
	shapeCuboid   = "cuboid"
	shapeBall     = "ball"
)

// ShapeSpec is a collider shape keyed by its type field.
type ShapeSpec struct {
	Type       string  `yaml:"type"`
	Radius     float64 `yaml:"radius"`
	Height     float64 `yaml:"height"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

func (s *ShapeSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain ShapeSpec
	var raw plain
	if err := node.Decode(&raw); err != nil {
		return err
	}
	switch raw.Type {
	case shapeCapsuleY, shapeCuboid, shapeBall:
	case "":
		return fmt.Errorf("line %d: collider type: %w", node.Line, ErrMissingField)
	default:
		return fmt.Errorf("line %d: unknown collider type %q", node.Line, raw.Type)
	}
	*s = ShapeSpec(raw)
	return nil
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}
