package component

// Input stores per-frame movement and traversal intent for an entity.
type Input struct {
	MoveX           float64
	MoveZ           float64
	Interact        bool
	InteractPressed bool
	DropPressed     bool
}

var InputComponent = NewComponent[Input]()
