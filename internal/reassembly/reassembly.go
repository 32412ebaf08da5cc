// Package reassembly implements the growing byte accumulator used to
// join MORE/LAST fragment chains into one payload. It plays the role
// internal/fifo plays for CANopen's bounded segmented transfer, but the
// MMI fragment streams have no fixed frame size: the accumulator grows
// on every append and is capped only to guard against a pathological
// peer that fragments forever (spec.md §5, "Resource policy").
package reassembly

import "errors"

// ErrOverflow is returned by Append when accepting buf would grow the
// accumulator past its configured cap.
var ErrOverflow = errors.New("reassembly: fragment exceeds configured cap")

// DefaultCap is the recommended per-stream cap from spec.md §5.
const DefaultCap = 64 * 1024

// Buffer accumulates fragments for a single stream of a single session.
// The zero value is not ready for use; construct with New.
type Buffer struct {
	data []byte
	cap  int
}

// New returns an empty Buffer that rejects appends once its accumulated
// length would exceed capBytes. capBytes <= 0 means DefaultCap.
func New(capBytes int) *Buffer {
	if capBytes <= 0 {
		capBytes = DefaultCap
	}
	return &Buffer{cap: capBytes}
}

// Empty reports whether the buffer holds no accumulated fragments yet.
func (b *Buffer) Empty() bool {
	return len(b.data) == 0
}

// Len returns the number of bytes accumulated so far.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Append adds buf to the accumulator, copying it so the caller's slice
// may be reused or released afterwards. It fails with ErrOverflow
// without mutating the buffer if the combined length would exceed cap.
func (b *Buffer) Append(buf []byte) error {
	if len(b.data)+len(buf) > b.cap {
		return ErrOverflow
	}
	b.data = append(b.data, buf...)
	return nil
}

// Take returns the accumulated bytes and resets the buffer to empty.
// The caller owns the returned slice; the Buffer allocates a fresh
// backing array on the next Append.
func (b *Buffer) Take() []byte {
	out := b.data
	b.data = nil
	return out
}
