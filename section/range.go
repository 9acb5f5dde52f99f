package section

import "fmt"

// Range is a half-open [Start, End) interval of 64-bit logical layer
// addresses. A Range with Start == End is empty; empty ranges never overlap
// anything, including themselves.
type Range struct {
	Start uint64
	End   uint64
}

// NewRange creates the half-open range [start, end).
func NewRange(start, end uint64) Range {
	return Range{Start: start, End: end}
}

// Len returns the number of addresses covered by the range.
func (r Range) Len() uint64 {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no addresses.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Overlaps reports whether r and o share at least one address.
//
// This is the standard half-open interval overlap test: ranges that merely
// touch at a shared boundary do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Contains reports whether o falls fully within r.
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// Intersect returns the overlapping sub-range of r and o.
// The result is only meaningful when r.Overlaps(o).
func (r Range) Intersect(o Range) Range {
	return Range{Start: max(r.Start, o.Start), End: min(r.End, o.End)}
}

// Union returns the tight range enclosing both r and o.
func (r Range) Union(o Range) Range {
	return Range{Start: min(r.Start, o.Start), End: max(r.End, o.End)}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}
