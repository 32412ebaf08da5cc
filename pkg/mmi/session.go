package mmi

import "github.com/dvbtux/mmi221/internal/reassembly"

// stream identifies one of the four independent fragment streams a
// session can have in flight at once (spec.md §3, "Session entry").
// Arrival of a fragment on one stream never disturbs another.
type stream int

const (
	streamMenu stream = iota
	streamList
	streamSubtitleSegment
	streamSubtitleDownload
	streamCount
)

// streamFor maps a fragmentable tag to its stream. Callers must only
// pass one of the menu, list, subtitle_segment or subtitle_download
// MORE/LAST tags; any other tag panics.
func streamFor(tag Tag) stream {
	switch tag {
	case TagMenuMore, TagMenuLast:
		return streamMenu
	case TagListMore, TagListLast:
		return streamList
	case TagSubtitleSegmentMore, TagSubtitleSegmentLast:
		return streamSubtitleSegment
	case TagSubtitleDownloadMore, TagSubtitleDownloadLast:
		return streamSubtitleDownload
	default:
		panic("mmi: streamFor called with a non-fragmentable tag")
	}
}

// sessionEntry holds the four per-stream reassembly buffers for one
// session number. It is created lazily on the first *_MORE fragment
// for an unknown session (spec.md §4.4) and removed by ClearSession.
type sessionEntry struct {
	buffers [streamCount]*reassembly.Buffer
}

func newSessionEntry(fragCap int) *sessionEntry {
	e := &sessionEntry{}
	for i := range e.buffers {
		e.buffers[i] = reassembly.New(fragCap)
	}
	return e
}

// outcomeKind distinguishes the three results Defragmenter can return
// for one fragment (spec.md §4.4 and design note in spec.md §9).
type outcomeKind int

const (
	// outcomePending: the fragment was a *_MORE and was buffered; no
	// payload is ready for the caller yet.
	outcomePending outcomeKind = iota
	// outcomeBorrowed: the reassembled payload is the caller's own
	// input slice — no allocation, no ownership transfer.
	outcomeBorrowed
	// outcomeOwned: the reassembled payload is a fresh concatenation
	// the parser must treat as ephemeral (used only for the duration
	// of the callback it is about to invoke).
	outcomeOwned
)

type outcome struct {
	kind outcomeKind
	data []byte
}

// defragment implements the per-session, per-stream reassembly
// operation from spec.md §4.4. It must be called with r.mu held: it
// mutates the session table (creating an entry on first *_MORE for an
// unknown session) and grows the stream's accumulator in place.
func (r *Resource) defragment(sessionNumber uint16, tag Tag, isLast bool, input []byte) (outcome, error) {
	st := streamFor(tag)

	if !isLast {
		entry, ok := r.sessions[sessionNumber]
		if !ok {
			entry = newSessionEntry(r.fragCap)
			r.sessions[sessionNumber] = entry
		}
		if err := entry.buffers[st].Append(input); err != nil {
			r.logger.Warn("[RX] fragment reassembly overflow", "session", sessionNumber, "stream", st, "cap", r.fragCap)
			return outcome{}, ErrFragmentOverflow
		}
		r.logger.Debug("[RX] fragment buffered", "session", sessionNumber, "stream", st, "len", entry.buffers[st].Len())
		return outcome{kind: outcomePending}, nil
	}

	entry, ok := r.sessions[sessionNumber]
	if !ok || entry.buffers[st].Empty() {
		// A *_LAST with no preceding *_MORE is a legitimate
		// single-fragment message: deliver it without allocation.
		return outcome{kind: outcomeBorrowed, data: input}, nil
	}

	if err := entry.buffers[st].Append(input); err != nil {
		r.logger.Warn("[RX] fragment reassembly overflow", "session", sessionNumber, "stream", st, "cap", r.fragCap)
		return outcome{}, ErrFragmentOverflow
	}
	reassembled := entry.buffers[st].Take()
	r.logger.Debug("[RX] fragment chain complete", "session", sessionNumber, "stream", st, "len", len(reassembled))
	return outcome{kind: outcomeOwned, data: reassembled}, nil
}
