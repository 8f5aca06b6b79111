package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

type Sprite struct {
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()

// GridLayout describes a sprite sheet cut into equally sized tiles, read
// left-to-right then top-to-bottom.
type GridLayout struct {
	TileW    float64
	TileH    float64
	Rows     int
	Columns  int
	PaddingX float64
	PaddingY float64
	OffsetX  float64
	OffsetY  float64
}

// Len returns the number of tiles in the grid.
func (g GridLayout) Len() int {
	if g.Rows <= 0 || g.Columns <= 0 {
		return 0
	}
	return g.Rows * g.Columns
}

// Frame returns the source rectangle of tile index. Out-of-range indices
// yield an empty rectangle.
func (g GridLayout) Frame(index int) image.Rectangle {
	if index < 0 || index >= g.Len() {
		return image.Rectangle{}
	}
	col := index % g.Columns
	row := index / g.Columns
	x := g.OffsetX + float64(col)*(g.TileW+g.PaddingX)
	y := g.OffsetY + float64(row)*(g.TileH+g.PaddingY)
	return image.Rect(int(x), int(y), int(x+g.TileW), int(y+g.TileH))
}

// SpriteSheet links an entity's sprite to the grid its animation indexes.
type SpriteSheet struct {
	Layout GridLayout
}

var SpriteSheetComponent = NewComponent[SpriteSheet]()
