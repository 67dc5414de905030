package component

// RespawnRequest marks a player to be moved back to its SafeRespawn
// position once physics has run.
type RespawnRequest struct{}

var RespawnRequestComponent = NewComponent[RespawnRequest]()
