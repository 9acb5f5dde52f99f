package section

// Section is a stored (range, payload) pair within a layer. The payload
// length always equals Range.Len().
//
// Ownership: Data may alias caller-supplied input (zero-copy ingestion on
// the write path) or be owned outright (reconstructed from a disk read).
// Whichever mapper holds a Section owns it; callers must not modify a
// payload after handing it to a layer.
type Section struct {
	Range Range
	Data  []byte
}

// New creates a Section starting at addr covering len(data) addresses.
func New(addr uint64, data []byte) Section {
	return Section{
		Range: Range{Start: addr, End: addr + uint64(len(data))},
		Data:  data,
	}
}
