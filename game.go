package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/freerun/config"
	"github.com/milk9111/freerun/debugdraw"
	"github.com/milk9111/freerun/ecs"
	"github.com/milk9111/freerun/ecs/component"
	"github.com/milk9111/freerun/ecs/system"
	"github.com/milk9111/freerun/movement"
	"github.com/milk9111/freerun/traversal"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	playerRadius = 0.3
	walkSpeed    = 3.5
)

var backgroundColor = color.NRGBA{R: 24, G: 26, B: 32, A: 255}

type Game struct {
	frames int

	world    *ecs.World
	sched    *ecs.Scheduler
	renderer *debugdraw.Renderer
	watcher  *config.Watcher
	debug    bool
}

func NewGame(debug, watch bool) (*Game, error) {
	g := &Game{debug: debug}
	if err := g.loadScene(); err != nil {
		return nil, err
	}

	if watch {
		w, err := config.NewWatcher("config")
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// loadScene rebuilds the whole world from the yaml specs. The config
// watcher calls it again on every edit, so it must not leave partial
// state behind on failure.
func (g *Game) loadScene() error {
	ability, err := config.LoadAbilitySpec()
	if err != nil {
		return fmt.Errorf("load ability spec: %w", err)
	}
	level, err := config.LoadLevelSpec()
	if err != nil {
		return fmt.Errorf("load level spec: %w", err)
	}

	world := ecs.NewWorld()
	mover := movement.NewKinematic(level.Spawn.Vec3(), playerRadius)

	for i, s := range level.Surfaces {
		surf := s.Surface(uint64(i + 1))
		mover.AddSurface(surf)

		e := ecs.CreateEntity(world)
		if err := ecs.Add(world, e, component.ObstacleComponent.Kind(), &component.Obstacle{Name: s.Name, Surface: surf}); err != nil {
			return fmt.Errorf("add obstacle %s: %w", s.Name, err)
		}
	}

	table := ability.LayerTable()
	lib := ability.BuildLibrary()
	abl := traversal.NewAbility(table, lib, mover, ability.TraversalConfig())

	player := ecs.CreateEntity(world)
	if err := ecs.Add(world, player, component.TransformComponent.Kind(), &component.Transform{Pose: mover.Transform()}); err != nil {
		return fmt.Errorf("add player transform: %w", err)
	}
	if err := ecs.Add(world, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fmt.Errorf("add player input: %w", err)
	}
	if err := ecs.Add(world, player, component.BodyComponent.Kind(), &component.Body{Mover: mover, Speed: walkSpeed}); err != nil {
		return fmt.Errorf("add player body: %w", err)
	}
	if err := ecs.Add(world, player, component.TraverserComponent.Kind(), &component.Traverser{Ability: abl, Library: lib}); err != nil {
		return fmt.Errorf("add player traverser: %w", err)
	}
	if err := ecs.Add(world, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return fmt.Errorf("add player tag: %w", err)
	}

	g.world = world
	g.sched = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewMovementSystem(),
		system.NewTraversalSystem(),
	)
	g.renderer = debugdraw.NewRenderer(table)
	log.Printf("Game: loaded level %q with %d surfaces", level.Name, len(level.Surfaces))
	return nil
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		select {
		case name, ok := <-g.watcher.Events:
			if ok {
				log.Printf("Game: config %s changed, reloading scene", name)
				if err := g.loadScene(); err != nil {
					log.Printf("Game: reload failed: %v", err)
				}
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("Game: config watcher: %v", err)
			}
		default:
		}
	}

	g.sched.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.renderer.Draw(screen, g.world)

	if g.debug {
		ebitenutil.DebugPrintAt(screen,
			fmt.Sprintf("Frames: %d    FPS: %.2f    TPS: %.2f", g.frames, ebiten.ActualFPS(), ebiten.ActualTPS()),
			10, baseHeight-24)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
