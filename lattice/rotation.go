package lattice

// Rotation is a lattice-preserving rotation by a multiple of 90 degrees.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// PivotRotations are the non-trivial rotations a pivot move picks from.
var PivotRotations = [3]Rotation{Rotate90, Rotate180, Rotate270}

// rotationMatrices holds {{cos, -sin}, {sin, cos}} for each Rotation.
// Entries are exact integers, so no trigonometry is involved.
var rotationMatrices = [4][2][2]int{
	Rotate0:   {{1, 0}, {0, 1}},
	Rotate90:  {{0, -1}, {1, 0}},
	Rotate180: {{-1, 0}, {0, -1}},
	Rotate270: {{0, 1}, {-1, 0}},
}

// Degrees returns the counter-clockwise angle of r.
func (r Rotation) Degrees() int {
	return int(r) * 90
}

// Apply rotates the offset d counter-clockwise about the origin.
func (r Rotation) Apply(d Position) Position {
	m := rotationMatrices[r&3]
	return Position{
		X: m[0][0]*d.X + m[0][1]*d.Y,
		Y: m[1][0]*d.X + m[1][1]*d.Y,
	}
}

// RotateAbout rotates p about center.
func (r Rotation) RotateAbout(p, center Position) Position {
	return center.Add(r.Apply(p.Sub(center)))
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	return (4 - r) & 3
}
