package component

// CollisionGroup is a bit in a collider's membership or filter mask.
type CollisionGroup uint32

const (
	GroupCommon CollisionGroup = 1 << iota
	GroupPlayer
	GroupEnemy
	GroupWall
)

// CollisionLayer declares which groups an entity's shapes belong to and
// which groups they collide with. Collider children inherit the layer of
// their owner.
type CollisionLayer struct {
	// Memberships defaults to GroupCommon when zero.
	Memberships CollisionGroup
	// Filters defaults to every group when zero.
	Filters CollisionGroup
}

func (l CollisionLayer) Categories() uint32 {
	if l.Memberships == 0 {
		return uint32(GroupCommon)
	}
	return uint32(l.Memberships)
}

func (l CollisionLayer) Mask() uint32 {
	if l.Filters == 0 {
		return ^uint32(0)
	}
	return uint32(l.Filters)
}

var CollisionLayerComponent = NewComponent[CollisionLayer]()
