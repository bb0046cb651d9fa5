package component

import "github.com/milk9111/freerun/movement"

// Obstacle marks an entity as a static traversable volume in the scene.
type Obstacle struct {
	Name    string
	Surface movement.Surface
}

var ObstacleComponent = NewComponent[Obstacle]()
