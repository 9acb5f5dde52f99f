// Package layer implements a single generation (layer) of a stacked,
// append-oriented key-range database: non-overlapping byte-range sections in
// one logical 64-bit address space, backed either by the heap (fresh,
// writable) or by a persistent resource (flushed or loaded, read-only).
//
// # Lifecycle
//
// A layer is created fresh and heap-backed with New, or reconstructed
// disk-backed from persisted bytes with Load. A fresh layer accumulates
// sections through the write path and is flushed exactly once in its
// productive life:
//
//	l, _ := layer.New(file)
//	collisions, _ := l.CheckCollisions(query)
//	for _, free := range l.CheckNonCollisions(query, collisions) {
//	    _ = l.WriteUnchecked(free.Start, payload(free))
//	}
//	_ = l.Flush() // one-way: the layer becomes read-only
//
// After Flush (or Load) the layer never mutates, so a single instance can be
// shared by any number of concurrent readers. Before that point the package
// performs no locking: a fresh layer belongs to exactly one writer, and
// serializing access is the caller's job.
//
// # Unchecked primitives
//
// ReadUnchecked and WriteUnchecked are deliberately primitive.
// WriteUnchecked trusts the caller to have proven the target range
// collision-free via CheckCollisions/CheckNonCollisions; violating that
// precondition corrupts the layer's ordering invariant. ReadUnchecked serves
// at most one section per call; reads spanning two sections must be split by
// the caller. Both contracts exist so the common paths pay for exactly one
// scan. Write is the checked convenience wrapper for callers that have not
// already paid for the collision scan.
package layer
