// Package mmi implements the EN 50221 Man-Machine Interface application
// resource: the protocol engine that encodes and decodes the MMI object
// set (menus, enquiries, subtitles, scene graphics) on top of an
// established CAM session, and returns user responses to it.
//
// The resource never touches the wire directly — callers supply a
// SendInterface at construction, and the session/transport layers below
// it are external collaborators, matched by the session layer before a
// PDU ever reaches Deliver.
package mmi

import (
	"log/slog"
	"sync"

	"github.com/dvbtux/mmi221/internal/reassembly"
)

// SendInterface is the resource's only way to reach the wire. Both
// methods mirror the C send_data/send_datav contract: return the
// number of bytes written, or an error propagated verbatim from the
// transport (spec.md §6, "IoError").
type SendInterface interface {
	Send(sessionNumber uint16, data []byte) (int, error)
	SendVectored(sessionNumber uint16, chunks [][]byte) (int, error)
}

// Resource is the MMI application resource. Create one with New, wire
// it to a session layer by calling Deliver from the reader goroutine,
// and register callbacks for whichever incoming object classes the
// application cares about.
//
// A single mutex protects the session table and the callback registry
// (spec.md §5). Callback lookups copy the registered function under
// the lock, release it, and invoke the callback
// unlocked — required so a callback may re-enter the resource (e.g.
// to send a reply) without deadlocking.
type Resource struct {
	mu      sync.Mutex
	send    SendInterface
	logger  *slog.Logger
	fragCap int

	sessions  map[uint16]*sessionEntry
	callbacks callbackTable
}

// New creates an MMI resource bound to the given SendInterface. A nil
// logger falls back to slog.Default(); a fragCap <= 0 falls back to
// reassembly.DefaultCap (64 KiB, per spec.md §5's recommendation) —
// the same positional-parameter-plus-nil-check shape as
// pkg/sdo.NewSDOServer, not a functional-options constructor.
func New(send SendInterface, logger *slog.Logger, fragCap int) *Resource {
	if logger == nil {
		logger = slog.Default()
	}
	if fragCap <= 0 {
		fragCap = reassembly.DefaultCap
	}
	return &Resource{
		send:     send,
		logger:   logger,
		fragCap:  fragCap,
		sessions: make(map[uint16]*sessionEntry),
	}
}

// ClearSession removes the session table entry for sessionNumber,
// freeing its fragment buffers. The session layer calls this when an
// MMI session is torn down. There is no ordering guarantee between a
// concurrent ClearSession and an in-flight Deliver for the same
// session — the session layer must not issue them concurrently
// (spec.md §5).
//
// Every exit path unlocks: the original C
// en50221_app_mmi_clear_session returns from inside the lock on the
// match path, never releasing it (see DESIGN.md, "Open question" in
// spec.md §9). This implementation uses defer so that bug cannot
// recur.
func (r *Resource) ClearSession(sessionNumber uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionNumber)
}

// Destroy releases every remaining session entry. It is safe to call
// only when no other goroutine is inside the resource (no in-flight
// Deliver, encoder call, or registration) — the same contract the
// source's en50221_app_mmi_destroy has.
func (r *Resource) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = nil
}
