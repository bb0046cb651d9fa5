package traversal

import (
	"github.com/milk9111/freerun/movement"
	"github.com/milk9111/freerun/obstacle"
)

// Snapshot is a read-only copy of the ability's last classification,
// handed to the debug visualizer. The visualizer never feeds back into the
// state machine; it only ever sees these values.
type Snapshot struct {
	Category  obstacle.Category
	Surface   movement.Surface
	Anchor    obstacle.Anchor
	HasAnchor bool
	Accepted  bool
	Active    bool
	Config    Config
}
