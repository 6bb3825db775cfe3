package scene

import "github.com/google/uuid"

// Kind distinguishes the object types stored in a scene.
type Kind string

const (
	KindGroup Kind = "group"
	KindMesh  Kind = "mesh"
)

// Object is anything that can be attached to a [Scene] or a [Group].
type Object interface {
	ID() uuid.UUID
	Kind() Kind
	Label() string
}

// Mesh is a box geometry rendered with a material.
//
// The material is held by pointer so appearance changes (selection, hover)
// are visible to every holder of the mesh.
type Mesh struct {
	id       uuid.UUID
	Name     string
	Geometry BoxGeometry
	Material *Material
}

func (m *Mesh) ID() uuid.UUID { return m.id }
func (m *Mesh) Kind() Kind    { return KindMesh }
func (m *Mesh) Label() string { return m.Name }

// Group is an ordered collection of child objects.
type Group struct {
	id       uuid.UUID
	Name     string
	children []Object
}

func (g *Group) ID() uuid.UUID { return g.id }
func (g *Group) Kind() Kind    { return KindGroup }
func (g *Group) Label() string { return g.Name }

// Add appends o to the group. Nil objects are ignored.
func (g *Group) Add(o Object) {
	if o == nil {
		return
	}
	g.children = append(g.children, o)
}

// Children returns the group's children in insertion order.
// The returned slice must not be modified.
func (g *Group) Children() []Object { return g.children }

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.children) }
