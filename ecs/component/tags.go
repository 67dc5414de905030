package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// SolidTag marks actors that push dynamic actors out instead of reporting
// collision pairs.
type SolidTag struct{}

var SolidTagComponent = NewComponent[SolidTag]()

type PickupTag struct{}

var PickupTagComponent = NewComponent[PickupTag]()

type EnemyTag struct{}

var EnemyTagComponent = NewComponent[EnemyTag]()
