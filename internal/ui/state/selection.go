package state

// Selection is a fixed-size bit vector indexed by registry position
type Selection []bool

// NewSelection returns n bits all set to selected
func NewSelection(n int, selected bool) Selection {
	s := make(Selection, n)
	s.SetAll(selected)
	return s
}

// Toggle flips bit i. Out-of-range indices are ignored.
func (s Selection) Toggle(i int) {
	if i >= 0 && i < len(s) {
		s[i] = !s[i]
	}
}

// SetAll sets every bit to v
func (s Selection) SetAll(v bool) {
	for i := range s {
		s[i] = v
	}
}

// IsSelected reports bit i
func (s Selection) IsSelected(i int) bool {
	return i >= 0 && i < len(s) && s[i]
}

// Count returns the number of set bits
func (s Selection) Count() int {
	n := 0
	for _, v := range s {
		if v {
			n++
		}
	}
	return n
}

// Indices returns the set positions in ascending order
func (s Selection) Indices() []int {
	out := make([]int, 0, len(s))
	for i, v := range s {
		if v {
			out = append(out, i)
		}
	}
	return out
}
