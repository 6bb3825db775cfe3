package scene

import (
	"strconv"

	"github.com/google/uuid"
)

// Graph is the part of a scene the layout builder depends on.
type Graph interface {
	// NewGroup creates an empty, unattached group.
	NewGroup(name string) *Group
	// NewMesh creates an unattached mesh with its own copy of mat.
	NewMesh(name string, geometry BoxGeometry, mat Material) *Mesh
	// Add attaches o to the scene root.
	Add(o Object)
}

// Option configures a [Scene].
type Option func(*Scene)

// WithSequentialIDs makes object ids deterministic: the n-th object created
// by the scene gets uuid.NewSHA1(ns, "n").
func WithSequentialIDs(ns uuid.UUID) Option {
	return func(s *Scene) {
		var n int
		s.nextID = func() uuid.UUID {
			n++
			return uuid.NewSHA1(ns, []byte(strconv.Itoa(n)))
		}
	}
}

// WithIDFunc sets a custom id source.
func WithIDFunc(fn func() uuid.UUID) Option {
	return func(s *Scene) {
		if fn != nil {
			s.nextID = fn
		}
	}
}

// Scene is the root of a scene graph. It is not safe for concurrent use.
type Scene struct {
	nextID   func() uuid.UUID
	children []Object
}

// Ensure Scene implements Graph.
var _ Graph = (*Scene)(nil)

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{nextID: uuid.New}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scene) NewGroup(name string) *Group {
	return &Group{id: s.nextID(), Name: name}
}

func (s *Scene) NewMesh(name string, geometry BoxGeometry, mat Material) *Mesh {
	return &Mesh{id: s.nextID(), Name: name, Geometry: geometry, Material: &mat}
}

// Add attaches o to the scene root. Nil objects are ignored.
func (s *Scene) Add(o Object) {
	if o == nil {
		return
	}
	s.children = append(s.children, o)
}

// Children returns the root objects in insertion order.
// The returned slice must not be modified.
func (s *Scene) Children() []Object { return s.children }

// Walk visits every object depth-first in insertion order. depth is 0 for
// root objects. Returning false from fn skips the object's children.
func (s *Scene) Walk(fn func(o Object, depth int) bool) {
	var walk func(objs []Object, depth int)
	walk = func(objs []Object, depth int) {
		for _, o := range objs {
			if !fn(o, depth) {
				continue
			}
			if g, ok := o.(*Group); ok {
				walk(g.children, depth+1)
			}
		}
	}
	walk(s.children, 0)
}

// Find returns the object with the given id anywhere in the scene.
func (s *Scene) Find(id uuid.UUID) (Object, bool) {
	var found Object
	s.Walk(func(o Object, _ int) bool {
		if found != nil {
			return false
		}
		if o.ID() == id {
			found = o
			return false
		}
		return true
	})
	return found, found != nil
}

// Len returns the total number of objects in the scene, groups included.
func (s *Scene) Len() int {
	n := 0
	s.Walk(func(Object, int) bool {
		n++
		return true
	})
	return n
}
