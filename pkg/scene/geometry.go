package scene

// Vec3 is a point or direction in scene units.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// BoxGeometry is an axis-aligned box described by its size and center.
// Geometries are values: Translate returns a moved copy.
type BoxGeometry struct {
	Size   Vec3 `json:"size"`
	Center Vec3 `json:"center"`
}

// NewBoxGeometry returns a box of the given width (X), height (Y) and depth (Z)
// centered at the origin.
func NewBoxGeometry(width, height, depth float64) BoxGeometry {
	return BoxGeometry{Size: Vec3{width, height, depth}}
}

// Translate returns the geometry moved by (x, y, z).
func (g BoxGeometry) Translate(x, y, z float64) BoxGeometry {
	g.Center = g.Center.Add(Vec3{x, y, z})
	return g
}

// Min returns the corner with the smallest coordinates.
func (g BoxGeometry) Min() Vec3 { return g.Center.Sub(g.Size.Scale(0.5)) }

// Max returns the corner with the largest coordinates.
func (g BoxGeometry) Max() Vec3 { return g.Center.Add(g.Size.Scale(0.5)) }
