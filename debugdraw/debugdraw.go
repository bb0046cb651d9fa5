package debugdraw

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/freerun/ecs"
	"github.com/milk9111/freerun/ecs/component"
	"github.com/milk9111/freerun/obstacle"
)

const (
	defaultZoom = 24.0
	markerSize  = 6.0
	heightShear = 0.45
)

var categoryColors = map[obstacle.Category]color.NRGBA{
	obstacle.None:     {R: 110, G: 110, B: 110, A: 255},
	obstacle.Wall:     {R: 220, G: 80, B: 80, A: 255},
	obstacle.Table:    {R: 220, G: 170, B: 60, A: 255},
	obstacle.Platform: {R: 80, G: 180, B: 220, A: 255},
	obstacle.Ledge:    {R: 170, G: 110, B: 220, A: 255},
	obstacle.DropDown: {R: 80, G: 220, B: 120, A: 255},
}

// Renderer draws the scene as a sheared top-down wireframe: obstacle
// volumes colored by category, the player marker, the live anchor, and
// a text readout of the traversal state.
type Renderer struct {
	table obstacle.LayerTable
	zoom  float64

	cam mgl64.Vec3
}

func NewRenderer(table obstacle.LayerTable) *Renderer {
	return &Renderer{table: table, zoom: defaultZoom}
}

func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World) {
	if r == nil || screen == nil || w == nil {
		return
	}

	if player, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		if transform, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
			r.cam = transform.Pose.Position
		}
	}

	ecs.ForEach(w, component.ObstacleComponent.Kind(), func(_ ecs.Entity, obs *component.Obstacle) {
		r.drawVolume(screen, obs)
	})
	r.drawPlayer(screen, w)
	r.drawAnchor(screen, w)
	r.drawReadout(screen, w)
}

func (r *Renderer) drawVolume(screen *ebiten.Image, obs *component.Obstacle) {
	clr, ok := categoryColors[r.table.Classify(obs.Surface.Layer)]
	if !ok {
		clr = categoryColors[obstacle.None]
	}

	top := obs.Surface.TopCorners()
	down := obs.Surface.Up().Mul(obs.Surface.Size.Y())
	var bottom [4]mgl64.Vec3
	for i, c := range top {
		bottom[i] = c.Sub(down)
	}

	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		r.line(screen, top[i], top[j], clr)
		r.line(screen, bottom[i], bottom[j], clr)
		r.line(screen, top[i], bottom[i], clr)
	}
}

func (r *Renderer) drawPlayer(screen *ebiten.Image, w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}

	white := color.NRGBA{R: 240, G: 240, B: 240, A: 255}
	pos := transform.Pose.Position
	r.cross(screen, pos, white)
	r.line(screen, pos, pos.Add(transform.Pose.Forward().Mul(0.8)), white)
}

func (r *Renderer) drawAnchor(screen *ebiten.Image, w *ecs.World) {
	player, ok := ecs.First(w, component.TraverserComponent.Kind())
	if !ok {
		return
	}
	trav, ok := ecs.Get(w, player, component.TraverserComponent.Kind())
	if !ok || trav.Ability == nil {
		return
	}

	snap := trav.Ability.DebugSnapshot()
	if !snap.HasAnchor {
		return
	}
	clr := color.NRGBA{R: 255, G: 230, B: 40, A: 255}
	if !snap.Accepted {
		clr = color.NRGBA{R: 255, G: 90, B: 40, A: 255}
	}
	pos := snap.Anchor.Position
	r.cross(screen, pos, clr)
	r.line(screen, pos, pos.Add(snap.Anchor.Forward().Mul(0.6)), clr)
}

func (r *Renderer) drawReadout(screen *ebiten.Image, w *ecs.World) {
	player, ok := ecs.First(w, component.TraverserComponent.Kind())
	if !ok {
		return
	}
	trav, _ := ecs.Get(w, player, component.TraverserComponent.Kind())
	body, _ := ecs.Get(w, player, component.BodyComponent.Kind())
	if trav == nil || trav.Ability == nil || body == nil || body.Mover == nil {
		return
	}

	snap := trav.Ability.DebugSnapshot()
	flags := body.Mover.Flags()
	text := fmt.Sprintf(
		"Category: %v\nAccepted: %v\nActive: %v\nGrounded: %v\nFlags: coll=%v snap=%v pen=%v grav=%v\n\nWASD move  E traverse  Q drop",
		snap.Category, snap.Accepted, trav.Ability.Active(), body.Mover.Grounded(),
		flags.Collision, flags.GroundSnap, flags.PenetrationResolution, flags.Gravity,
	)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

func (r *Renderer) line(screen *ebiten.Image, a, b mgl64.Vec3, clr color.NRGBA) {
	x1, y1 := r.toScreen(screen, a)
	x2, y2 := r.toScreen(screen, b)
	ebitenutil.DrawLine(screen, x1, y1, x2, y2, clr)
}

func (r *Renderer) cross(screen *ebiten.Image, p mgl64.Vec3, clr color.NRGBA) {
	x, y := r.toScreen(screen, p)
	half := markerSize / 2
	ebitenutil.DrawLine(screen, x-half, y, x+half, y, clr)
	ebitenutil.DrawLine(screen, x, y-half, x, y+half, clr)
}

// toScreen projects world space onto the screen: x maps straight across,
// z maps up the screen, and height shears upward for a 2.5d read.
func (r *Renderer) toScreen(screen *ebiten.Image, v mgl64.Vec3) (float64, float64) {
	bounds := screen.Bounds()
	cx := float64(bounds.Dx()) / 2
	cy := float64(bounds.Dy()) / 2

	d := v.Sub(r.cam)
	x := cx + d.X()*r.zoom
	y := cy - d.Z()*r.zoom - d.Y()*r.zoom*heightShear
	return x, y
}
