package mmi

import "errors"

// Error kinds returned by the dispatcher, parsers, and Defragmenter
// (spec.md §7). They are sentinels so callers can use errors.Is; a
// parser error discards only the current PDU, never session state.
var (
	// ErrShortData means the payload is shorter than the framing for
	// that object requires.
	ErrShortData = errors.New("mmi: payload shorter than framing requires")

	// ErrUnexpectedTag means the tag is outside the 24-entry MMI object
	// set, or (inside a text chain) is neither TEXT_MORE nor TEXT_LAST.
	ErrUnexpectedTag = errors.New("mmi: unexpected tag")

	// ErrMalformedLength means the ASN.1 BER length prefix is invalid
	// or its own length bytes run past the end of the PDU. A valid
	// prefix declaring more bytes than remain is reported as
	// ErrShortData instead.
	ErrMalformedLength = errors.New("mmi: malformed asn.1 length")

	// ErrFragmentOverflow means the accumulated fragment length for a
	// stream exceeded its configured cap.
	ErrFragmentOverflow = errors.New("mmi: fragment reassembly overflow")

	// ErrOutOfMemory means an allocation failed while reassembling or
	// encoding a payload.
	ErrOutOfMemory = errors.New("mmi: out of memory")
)
