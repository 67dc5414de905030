// Package component declares the data attached to entities. Each component
// type gets one package-level handle whose Kind keys its storage.
package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys a storage set. Zero is never handed out.
type ComponentID uint32

var lastComponentID atomic.Uint32

// Kind is the untyped view of a ComponentKind, used by queries that mix
// component types.
type Kind interface {
	ID() ComponentID
}

// ComponentKind ties a ComponentID to the Go type stored under it.
type ComponentKind[T any] struct{ id ComponentID }

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(lastComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }

// ComponentHandle is what component files export, e.g.
// var TransformComponent = NewComponent[Transform]().
type ComponentHandle[T any] struct{ kind ComponentKind[T] }

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
