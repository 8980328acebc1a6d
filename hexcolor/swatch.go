package hexcolor

// Vertex is a mesh corner. Color indexes the palette the mesh was built from.
type Vertex struct {
	Position [3]float32
	Color    int
}

type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// swatchPitch is the distance between swatch origins; each swatch is a unit square.
const swatchPitch = 1.25

// GenerateSwatch lays p out as unit quads on the z=0 plane, facing +Z, filling rows
// of the given width left to right and top to bottom. columns <= 0 means one row.
func GenerateSwatch(p Palette, columns int) *Mesh {
	mesh := &Mesh{}
	if columns <= 0 {
		columns = len(p)
	}
	for i := range p {
		col := i % columns
		row := i / columns
		x := float32(col) * swatchPitch
		y := -float32(row) * swatchPitch
		addQuad(mesh, x, y, i)
	}
	return mesh
}

func addQuad(mesh *Mesh, x, y float32, color int) {
	verts := [4]Vertex{
		{Position: [3]float32{x, y - 1, 0}, Color: color},
		{Position: [3]float32{x + 1, y - 1, 0}, Color: color},
		{Position: [3]float32{x + 1, y, 0}, Color: color},
		{Position: [3]float32{x, y, 0}, Color: color},
	}
	baseIdx := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, verts[:]...)
	mesh.Indices = append(mesh.Indices, baseIdx, baseIdx+1, baseIdx+2, baseIdx, baseIdx+2, baseIdx+3)
}
