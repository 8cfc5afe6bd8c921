package analysis

import "fmt"

//MaxTrajectoryLen is the number of ball positions kept per run
const MaxTrajectoryLen = 100

//Position is an entity's center at a given frame
type Position struct {
	Frame int
	X     float64
	Y     float64
}

//Point drops the frame index
func (p Position) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

//Trajectory is a fixed capacity ring of positions ordered by frame index.
//Appending to a full trajectory evicts the oldest position.
type Trajectory struct {
	positions []Position
	capacity  int
	head      int //index of the oldest position
	size      int
}

//NewTrajectory creates an empty trajectory. capacity < 1 falls back to MaxTrajectoryLen.
func NewTrajectory(capacity int) *Trajectory {
	if capacity < 1 {
		capacity = MaxTrajectoryLen
	}

	return &Trajectory{
		positions: make([]Position, capacity),
		capacity:  capacity,
	}
}

//Append adds pos as the newest entry. pos.Frame must be greater than the newest frame index.
func (t *Trajectory) Append(pos Position) error {
	if last, ok := t.Latest(); ok && pos.Frame <= last.Frame {
		return fmt.Errorf("Trajectory.Append: frame %d after frame %d: %w", pos.Frame, last.Frame, ErrOutOfOrder)
	}

	if t.size == t.capacity {
		t.positions[t.head] = pos
		t.head = (t.head + 1) % t.capacity
		return nil
	}

	t.positions[(t.head+t.size)%t.capacity] = pos
	t.size++
	return nil
}

//Len returns the number of stored positions
func (t *Trajectory) Len() int {
	return t.size
}

//Cap returns the maximum number of stored positions
func (t *Trajectory) Cap() int {
	return t.capacity
}

//At returns the i-th position, 0 being the oldest
func (t *Trajectory) At(i int) Position {
	if i < 0 || i >= t.size {
		panic(fmt.Sprintf("Trajectory.At: index %d out of range [0,%d)", i, t.size))
	}
	return t.positions[(t.head+i)%t.capacity]
}

//Oldest returns the oldest stored position
func (t *Trajectory) Oldest() (Position, bool) {
	if t.size == 0 {
		return Position{}, false
	}
	return t.At(0), true
}

//Latest returns the newest stored position
func (t *Trajectory) Latest() (Position, bool) {
	if t.size == 0 {
		return Position{}, false
	}
	return t.At(t.size - 1), true
}

//Window returns, oldest first, the positions whose frame index is >= currentFrame-lookback
func (t *Trajectory) Window(currentFrame, lookback int) []Position {
	minFrame := currentFrame - lookback

	//positions are sorted, walk back from the newest until we leave the window
	start := t.size
	for start > 0 && t.At(start-1).Frame >= minFrame {
		start--
	}

	window := make([]Position, 0, t.size-start)
	for i := start; i < t.size; i++ {
		window = append(window, t.At(i))
	}

	return window
}

//Positions returns a copy of every stored position, oldest first
func (t *Trajectory) Positions() []Position {
	res := make([]Position, t.size)
	for i := range res {
		res[i] = t.At(i)
	}
	return res
}
