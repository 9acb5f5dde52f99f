package section

import "github.com/arloliu/strata/errs"

// AppendRecordHeader appends the 16-byte record header for r (start and end
// address, big-endian) to dst and returns the extended slice. The section
// payload follows the record header directly in the persisted format.
func AppendRecordHeader(dst []byte, r Range) []byte {
	dst = engine.AppendUint64(dst, r.Start)
	dst = engine.AppendUint64(dst, r.End)

	return dst
}

// ParseRecordHeader parses a 16-byte section record header.
//
// Returns:
//   - Range: The section's address range
//   - error: ErrInvalidSectionRecord (wrapped under ErrCorrupted) if data is
//     short or the range is inverted
func ParseRecordHeader(data []byte) (Range, error) {
	if len(data) < RecordHeaderSize {
		return Range{}, errs.Corrupt(errs.ErrInvalidSectionRecord)
	}

	r := Range{
		Start: engine.Uint64(data[0:8]),
		End:   engine.Uint64(data[8:RecordHeaderSize]),
	}
	if r.Start > r.End {
		return Range{}, errs.Corrupt(errs.ErrInvalidSectionRecord)
	}

	return r, nil
}
