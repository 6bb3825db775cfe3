// Package scene is a minimal in-memory 3D scene graph.
//
// # Overview
//
// The depth plot never talks to a GPU. It needs a handful of primitives from
// whatever renders it: create a box geometry, translate it, wrap it in a mesh
// with a material, collect meshes in groups and attach objects to a root.
// [Scene] implements exactly those primitives and keeps the result as plain
// Go values, so sinks in [github.com/matzehuels/depthplot/pkg/render/sink]
// can project and export the graph afterwards.
//
// # Identity
//
// Every [Mesh] and [Group] carries a [uuid.UUID] assigned by the scene that
// created it. By default ids are random (uuid v4). [WithSequentialIDs] makes
// them name-based (uuid v5 over a namespace and a counter), so building the
// same input twice yields the same ids.
//
// # Usage
//
//	sc := scene.New()
//	g := sc.NewGroup("blocks")
//	sc.Add(g)
//
//	box := scene.NewBoxGeometry(0.8, 0.8, 0.8).Translate(-24, 1.2, 0)
//	m := sc.NewMesh("block", box, scene.Material{Color: 0xaf060f, Opacity: 0.5, Transparent: true})
//	g.Add(m)
//
// [uuid.UUID]: https://pkg.go.dev/github.com/google/uuid#UUID
package scene
