package section

import "github.com/arloliu/strata/errs"

// Header represents the fixed-size header at the start of a persisted layer.
type Header struct {
	// Size is the total payload bytes across all sections. This is distinct
	// from Bounds.Len() because gaps are allowed between sections.
	Size uint64
	// Bounds is the tight enclosing interval of all sections in the layer.
	Bounds Range
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 24 bytes)
//
// Returns:
//   - error: ErrInvalidHeader (wrapped under ErrCorrupted) if data is short
//     or the fields are inconsistent
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.Corrupt(errs.ErrInvalidHeader)
	}

	h.Size = engine.Uint64(data[SizeOffset:BoundsStartOffset])
	h.Bounds.Start = engine.Uint64(data[BoundsStartOffset:BoundsEndOffset])
	h.Bounds.End = engine.Uint64(data[BoundsEndOffset:HeaderSize])

	return h.validate()
}

// validate rejects headers whose fields cannot describe any layer: inverted
// bounds, or a declared size exceeding the bounds span. Non-overlapping
// sections inside the bounds can never carry more payload than the span.
func (h *Header) validate() error {
	if h.Bounds.Start > h.Bounds.End {
		return errs.Corrupt(errs.ErrInvalidHeader)
	}
	if h.Size > h.Bounds.Len() {
		return errs.Corrupt(errs.ErrInvalidHeader)
	}

	return nil
}

// Bytes serializes the Header into a byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine.PutUint64(b[SizeOffset:BoundsStartOffset], h.Size)
	engine.PutUint64(b[BoundsStartOffset:BoundsEndOffset], h.Bounds.Start)
	engine.PutUint64(b[BoundsEndOffset:HeaderSize], h.Bounds.End)

	return b
}

// AppendTo appends the serialized header to dst and returns the extended slice.
func (h Header) AppendTo(dst []byte) []byte {
	dst = engine.AppendUint64(dst, h.Size)
	dst = engine.AppendUint64(dst, h.Bounds.Start)
	dst = engine.AppendUint64(dst, h.Bounds.End)

	return dst
}

// ParseHeader parses a Header from a byte slice.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}
