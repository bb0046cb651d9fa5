package component

// PlayerTag marks the player-controlled entity.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
