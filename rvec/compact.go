package rvec

// Position records where Compact moved a value.
type Position struct {
	Prev int
	New  int
}

// Changed reports whether the value moved.
func (p Position) Changed() bool {
	return p.Prev != p.New
}

// Compact moves every present value down to fill the empty slots before it,
// keeping their relative order, and shrinks the Vec so that Cap equals Len.
// It returns one Position per value, in ascending order, so callers holding
// indices can remap them.
func (v *Vec[T]) Compact() []Position {
	positions := make([]Position, 0, v.filled)
	writePos := 0

	for readPos := range v.slots {
		if !v.slots[readPos].present {
			continue
		}
		if readPos != writePos {
			v.slots[writePos] = v.slots[readPos]
		}
		positions = append(positions, Position{Prev: readPos, New: writePos})
		writePos++
	}

	// zero the tail so dropped values can be collected
	clear(v.slots[writePos:])
	v.slots = v.slots[:writePos:writePos]
	v.filled = writePos

	return positions
}
