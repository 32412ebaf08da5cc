// Package transportfd is a reference mmi.SendInterface built directly
// on a file descriptor, using vectored writes where the protocol
// benefits from them (display_reply's char tables and graphics
// headers, answ's text body). It plays the role the CI adapter plays
// in the source: the MMI resource itself never opens or ioctls a
// device, a caller does that and hands the resulting fd here.
package transportfd

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FD sends every frame to a single open file descriptor (typically a
// CI slot device or a session-layer pipe). The session number is
// informational only at this layer — callers that multiplex several
// sessions over one fd are expected to frame that distinction
// themselves, as a real CI device does with its own session layer.
type FD struct {
	fd int
}

// New wraps an already-open, already-configured file descriptor.
// Callers own its lifecycle (open/close) — FD never closes it.
func New(fd int) *FD {
	return &FD{fd: fd}
}

// Send writes data to the underlying fd in one call.
func (t *FD) Send(sessionNumber uint16, data []byte) (int, error) {
	n, err := unix.Write(t.fd, data)
	if err != nil {
		return n, fmt.Errorf("transportfd: write session %d: %w", sessionNumber, err)
	}
	return n, nil
}

// SendVectored writes chunks as a single unix.Writev call, avoiding an
// intermediate concatenation for the larger display_reply/answ
// payloads.
func (t *FD) SendVectored(sessionNumber uint16, chunks [][]byte) (int, error) {
	n, err := unix.Writev(t.fd, chunks)
	if err != nil {
		return n, fmt.Errorf("transportfd: writev session %d: %w", sessionNumber, err)
	}
	return n, nil
}
