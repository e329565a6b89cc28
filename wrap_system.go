package spacerocks

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/go-gl/mathgl/mgl32"
)

// wrapToAABB folds pos back into aabb as if the world were a torus.
func wrapToAABB(pos mgl32.Vec2, aabb engo.AABB) (mgl32.Vec2, bool) {
	w := aabb.Max.X - aabb.Min.X
	h := aabb.Max.Y - aabb.Min.Y
	wrapped := false
	if pos[0] < aabb.Min.X {
		pos[0] += w
		wrapped = true
	}
	if pos[1] < aabb.Min.Y {
		pos[1] += h
		wrapped = true
	}
	if pos[0] > aabb.Max.X {
		pos[0] -= w
		wrapped = true
	}
	if pos[1] > aabb.Max.Y {
		pos[1] -= h
		wrapped = true
	}
	return pos, wrapped
}

// WrapSystem teleports wrapping bodies that left the world to the opposite edge.
type WrapSystem struct {
	G *Game

	entities []*Entity
}

func (ws *WrapSystem) Add(e *Entity) {
	if e.Body != nil && e.Marks.Has(MarkWrap) {
		ws.entities = append(ws.entities, e)
	}
}
func (ws *WrapSystem) Remove(basic ecs.BasicEntity) {
	ws.entities = removeEntity(ws.entities, basic)
}
func (*WrapSystem) Priority() int { return priorityWrap }
func (ws *WrapSystem) Update(dt float32) {
	for _, e := range ws.entities {
		if pos, wrapped := wrapToAABB(e.Body.Position, ws.G.Bounds); wrapped {
			ws.G.Physics.Teleport(e, pos)
		}
	}
}
