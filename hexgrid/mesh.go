package hexgrid

// Primitive tells a renderer how to read a mesh's index list.
type Primitive int

const (
	// Triangles reads indices three at a time.
	Triangles Primitive = iota
	// Lines reads indices two at a time.
	Lines
)

// Mesh2 is an indexed 2D mesh.
type Mesh2 struct {
	Vertices []Vec2
	Indices  []uint16
	Mode     Primitive
}

// Mesh3 is an indexed 3D mesh.
type Mesh3 struct {
	Vertices []Vec3
	Indices  []uint16
	Mode     Primitive
}

// Primitives returns the number of triangles or lines in the mesh.
func (m Mesh2) Primitives() int {
	if m.Mode == Lines {
		return len(m.Indices) / 2
	}
	return len(m.Indices) / 3
}

// Primitives returns the number of triangles or lines in the mesh.
func (m Mesh3) Primitives() int {
	if m.Mode == Lines {
		return len(m.Indices) / 2
	}
	return len(m.Indices) / 3
}

// Lift places a 2D mesh on the XZ plane at height y.
func (m Mesh2) Lift(y float64) Mesh3 {
	out := Mesh3{
		Vertices: make([]Vec3, len(m.Vertices)),
		Indices:  append([]uint16(nil), m.Indices...),
		Mode:     m.Mode,
	}
	for i, v := range m.Vertices {
		out.Vertices[i] = v.Lift(y)
	}
	return out
}

// FanFromCenter triangulates a hex as six triangles sharing the center vertex.
// Vertex 0 is the center; vertices 1..6 are the corners.
func FanFromCenter(center Vec2, radius float64, l Layout) Mesh2 {
	corners := Corners(center, radius, l)
	m := Mesh2{
		Vertices: make([]Vec2, 0, 7),
		Indices:  make([]uint16, 0, 18),
		Mode:     Triangles,
	}
	m.Vertices = append(m.Vertices, center)
	m.Vertices = append(m.Vertices, corners[:]...)
	for i := uint16(0); i < 6; i++ {
		m.Indices = append(m.Indices, 0, 1+i, 1+(i+1)%6)
	}
	return m
}

// FanFromFirst triangulates a hex as four triangles fanned from corner 0.
func FanFromFirst(center Vec2, radius float64, l Layout) Mesh2 {
	corners := Corners(center, radius, l)
	m := Mesh2{
		Vertices: corners[:],
		Indices:  make([]uint16, 0, 12),
		Mode:     Triangles,
	}
	for i := uint16(1); i < 5; i++ {
		m.Indices = append(m.Indices, 0, i, i+1)
	}
	return m
}

// Outline returns the hex border as a closed loop of six line segments.
func Outline(center Vec2, radius float64, l Layout) Mesh2 {
	corners := Corners(center, radius, l)
	m := Mesh2{
		Vertices: corners[:],
		Indices:  make([]uint16, 0, 12),
		Mode:     Lines,
	}
	for i := uint16(0); i < 6; i++ {
		m.Indices = append(m.Indices, i, (i+1)%6)
	}
	return m
}

// Prism builds a terrain column: a center fan on top at center.Y plus one
// quad per side reaching down to base.
func Prism(center Vec3, radius float64, l Layout, base float64) Mesh3 {
	m := FanFromCenter(center.XZ(), radius, l).Lift(center.Y)
	if base >= center.Y {
		return m
	}

	top := Corners3(center, radius, l)
	for i := 0; i < 6; i++ {
		j := (i + 1) % 6
		start := uint16(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			top[i],
			top[j],
			Vec3{top[j].X, base, top[j].Z},
			Vec3{top[i].X, base, top[i].Z},
		)
		m.Indices = append(m.Indices,
			start, start+1, start+2,
			start, start+2, start+3,
		)
	}
	return m
}
