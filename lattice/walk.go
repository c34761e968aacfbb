package lattice

// Walk is an ordered sequence of lattice positions together with an
// occupancy index that is kept in sync on every Extend and Truncate.
//
// The length of a walk is its number of edges, so a walk of length n holds
// n+1 positions.
type Walk struct {
	positions []Position
	occupied  map[Position]int
}

// NewWalk returns the zero-length walk sitting on start.
func NewWalk(start Position) *Walk {
	return &Walk{
		positions: []Position{start},
		occupied:  map[Position]int{start: 1},
	}
}

// StraightWalk returns the walk (0,0), (1,0), ..., (length,0).
func StraightWalk(length int) *Walk {
	w := &Walk{
		positions: make([]Position, 0, length+1),
		occupied:  make(map[Position]int, length+1),
	}
	for i := 0; i <= length; i++ {
		w.push(Position{X: i})
	}
	return w
}

// WalkOf builds a walk from an explicit position sequence. The sequence is
// not required to be self-avoiding; see SelfAvoiding.
func WalkOf(positions ...Position) *Walk {
	if len(positions) == 0 {
		panic("walk must contain at least one position")
	}
	w := &Walk{
		positions: make([]Position, 0, len(positions)),
		occupied:  make(map[Position]int, len(positions)),
	}
	for _, p := range positions {
		w.push(p)
	}
	return w
}

func (w *Walk) push(p Position) {
	w.positions = append(w.positions, p)
	w.occupied[p]++
}

// Len is the number of edges.
func (w *Walk) Len() int {
	return len(w.positions) - 1
}

// Start returns the anchored first position.
func (w *Walk) Start() Position {
	return w.positions[0]
}

// End returns the free end of the walk.
func (w *Walk) End() Position {
	return w.positions[len(w.positions)-1]
}

// At returns the i-th position.
func (w *Walk) At(i int) Position {
	return w.positions[i]
}

// Positions returns a copy of the position sequence.
func (w *Walk) Positions() []Position {
	out := make([]Position, len(w.positions))
	copy(out, w.positions)
	return out
}

// Occupied reports whether p is visited by the walk.
func (w *Walk) Occupied(p Position) bool {
	return w.occupied[p] > 0
}

// SelfAvoiding reports whether every position of the walk is distinct.
func (w *Walk) SelfAvoiding() bool {
	return len(w.occupied) == len(w.positions)
}

// FreeNeighbors returns the unoccupied neighbors of the walk's end, in
// Steps order.
func (w *Walk) FreeNeighbors() []Position {
	free := make([]Position, 0, 3)
	for _, n := range Neighbors(w.End()) {
		if !w.Occupied(n) {
			free = append(free, n)
		}
	}
	return free
}

// Extend appends p if it is an unoccupied neighbor of the end. It reports
// whether the walk grew.
func (w *Walk) Extend(p Position) bool {
	if w.Occupied(p) || p.Sub(w.End()).SquaredNorm() != 1 {
		return false
	}
	w.push(p)
	return true
}

// Truncate removes the last n positions. Truncating past the start is a
// programming error.
func (w *Walk) Truncate(n int) {
	if n < 0 || n > w.Len() {
		panic("cannot truncate walk beyond its start")
	}
	keep := len(w.positions) - n
	for _, p := range w.positions[keep:] {
		if w.occupied[p]--; w.occupied[p] == 0 {
			delete(w.occupied, p)
		}
	}
	w.positions = w.positions[:keep]
}

// Clone returns an independent copy.
func (w *Walk) Clone() *Walk {
	occupied := make(map[Position]int, len(w.occupied))
	for p, c := range w.occupied {
		occupied[p] = c
	}
	return &Walk{
		positions: w.Positions(),
		occupied:  occupied,
	}
}

// EndToEndSquared is the squared distance between the two ends.
func (w *Walk) EndToEndSquared() int {
	return w.End().Sub(w.Start()).SquaredNorm()
}

// IsSelfAvoiding reports whether positions contains no repeated site.
func IsSelfAvoiding(positions []Position) bool {
	seen := make(map[Position]struct{}, len(positions))
	for _, p := range positions {
		if _, ok := seen[p]; ok {
			return false
		}
		seen[p] = struct{}{}
	}
	return true
}
