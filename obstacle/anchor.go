package obstacle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/freerun/common"
)

// Anchor is where and how a transition attaches the character to an
// obstacle. The orientation faces outward across the winning edge.
type Anchor struct {
	common.Transform
	Edge     int
	Distance float64
}

// ClosestEdgeAnchor finds the closest point to p on the four boundary edges
// of a rectangular surface. Corners are world-space in cyclic order; up is
// the surface's up vector. Ties between edges resolve to the lowest index.
func ClosestEdgeAnchor(corners [4]mgl64.Vec3, up, p mgl64.Vec3) Anchor {
	best := Anchor{Edge: -1, Distance: math.Inf(1)}
	for i := 0; i < 4; i++ {
		a := corners[i]
		b := corners[(i+1)%4]
		q := closestOnSegment(a, b, p)
		d := p.Sub(q).Len()
		if d >= best.Distance {
			continue
		}
		best = Anchor{
			Transform: common.Transform{
				Position:    q,
				Orientation: edgeOrientation(a, b, up),
			},
			Edge:     i,
			Distance: d,
		}
	}
	return best
}

// closestOnSegment projects p onto segment ab and clamps to the endpoints.
// A zero-length segment is treated as the point a.
func closestOnSegment(a, b, p mgl64.Vec3) mgl64.Vec3 {
	e := b.Sub(a)
	den := e.Dot(e)
	if den == 0 {
		return a
	}
	t := common.Clamp(p.Sub(a).Dot(e)/den, 0, 1)
	return a.Add(e.Mul(t))
}

func edgeOrientation(a, b mgl64.Vec3, up mgl64.Vec3) mgl64.Quat {
	outward := up.Cross(b.Sub(a))
	if outward.Len() == 0 {
		// degenerate or up-parallel edge; no meaningful facing
		return mgl64.QuatIdent()
	}
	return common.BasisQuat(outward, up)
}
