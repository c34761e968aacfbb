package lattice

// Position is a site of the 2D square lattice.
type Position struct {
	X int
	Y int
}

// Origin is the fixed starting site of every grown walk.
var Origin = Position{}

// Steps lists the unit moves in neighbor order: +x, -x, +y, -y.
var Steps = [4]Position{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Add returns p translated by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the offset from q to p.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Neighbors returns the four von Neumann neighbors of p in Steps order.
func Neighbors(p Position) [4]Position {
	var out [4]Position
	for i, d := range Steps {
		out[i] = p.Add(d)
	}
	return out
}

// SquaredNorm is x^2 + y^2.
func (p Position) SquaredNorm() int {
	return p.X*p.X + p.Y*p.Y
}
