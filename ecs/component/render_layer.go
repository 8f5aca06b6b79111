package component

// RenderLayer is used to sort draw order deterministically. Higher layers
// draw on top.
type RenderLayer struct {
	Index int
}

const (
	LayerGround = iota
	LayerEnemy
	LayerPlayer
)

var RenderLayerComponent = NewComponent[RenderLayer]()
