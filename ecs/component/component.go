// Package component holds the plain data attached to entities and the
// typed kind handles a World files them under.
package component

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID indexes a component store. Zero is never issued.
type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	storeNames      sync.Map // ComponentID -> string
)

// String is the component type name the id was issued for, e.g.
// "Transform".
func (id ComponentID) String() string {
	if name, ok := storeNames.Load(id); ok {
		return name.(string)
	}
	return "component#" + strconv.FormatUint(uint64(id), 10)
}

// ComponentKind is the typed key for components of type T.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind issues a fresh id. Two kinds for the same T are distinct
// stores.
func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	var zero T
	name := fmt.Sprintf("%T", zero)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	storeNames.Store(id, name)
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }
func (k ComponentKind[T]) String() string  { return k.id.String() }

// ComponentHandle is what each component file exports, e.g.
// TransformComponent.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
