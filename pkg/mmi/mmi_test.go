package mmi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSend records every frame handed to it, single or vectored, in
// arrival order — enough to assert on the exact bytes an encoder
// produced without a real transport.
type fakeSend struct {
	frames [][]byte
}

func (f *fakeSend) Send(session uint16, data []byte) (int, error) {
	cp := append([]byte(nil), data...)
	f.frames = append(f.frames, cp)
	return len(data), nil
}

func (f *fakeSend) SendVectored(session uint16, chunks [][]byte) (int, error) {
	var joined []byte
	for _, c := range chunks {
		joined = append(joined, c...)
	}
	f.frames = append(f.frames, joined)
	return len(joined), nil
}

func (f *fakeSend) last() []byte {
	return f.frames[len(f.frames)-1]
}

// 1. Close immediate.
func TestDeliverCloseImmediate(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)
	var gotCmd, gotDelay uint8
	var gotSlot uint8
	var gotSession uint16
	r.RegisterCloseCallback(func(slot uint8, session uint16, cmdID, delay uint8) {
		gotSlot, gotSession, gotCmd, gotDelay = slot, session, cmdID, delay
	})

	n, err := r.Deliver(2, 9, 0, []byte{0x9F, 0x88, 0x00, 0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.EqualValues(t, 2, gotSlot)
	assert.EqualValues(t, 9, gotSession)
	assert.EqualValues(t, 0, gotCmd)
	assert.EqualValues(t, 0, gotDelay)
}

// 2. Close delayed.
func TestDeliverCloseDelayed(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)
	var gotCmd, gotDelay uint8
	r.RegisterCloseCallback(func(slot uint8, session uint16, cmdID, delay uint8) {
		gotCmd, gotDelay = cmdID, delay
	})

	n, err := r.Deliver(0, 1, 0, []byte{0x9F, 0x88, 0x00, 0x02, 0x01, 0x05})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.EqualValues(t, CloseCmdIDDelay, gotCmd)
	assert.EqualValues(t, 5, gotDelay)
}

// 3. Keypress encode.
func TestKeypressEncode(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)

	n, err := r.Keypress(0x1234, 0x20)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte{0x9F, 0x88, 0x06, 0x01, 0x20}, send.last())
}

// 4. Fragmented menu.
func TestDeliverFragmentedMenu(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)
	var got MenuList
	var gotSession uint16
	r.RegisterMenuCallback(func(slot uint8, session uint16, menu MenuList) {
		gotSession = session
		got = menu
	})

	moreBody := []byte{0x00, 0x9F, 0x88, 0x03, 0x01, 'A'}
	morePDU := append([]byte{0x9F, 0x88, 0x0A, byte(len(moreBody))}, moreBody...)
	n, err := r.Deliver(0, 7, 0, morePDU)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, got.Title.Data, "callback must not fire until the _LAST fragment arrives")

	lastBody := []byte{0x9F, 0x88, 0x03, 0x01, 'B', 0x9F, 0x88, 0x03, 0x01, 'C'}
	lastPDU := append([]byte{0x9F, 0x88, 0x09, byte(len(lastBody))}, lastBody...)
	n, err = r.Deliver(0, 7, 0, lastPDU)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.EqualValues(t, 7, gotSession)
	assert.Equal(t, "A", string(got.Title.Data))
	assert.Equal(t, "B", string(got.Subtitle.Data))
	assert.Equal(t, "C", string(got.Bottom.Data))
	assert.Equal(t, 0, got.ItemCount)
	assert.Empty(t, got.Items)
}

// 5. Graphics reply pixel depths.
func TestDisplayReplyGfxCharacteristics(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)

	gfx := &GfxCharacteristics{
		Width: 720, Height: 576,
		AspectRatio: 1, GfxRelationToVideo: 0, MultipleDepths: false,
		DisplayBytes: 4096, CompositionBufferBytes: 2048, ObjectCacheBytes: 1024,
		PixelDepths: []GfxPixelDepth{{DisplayDepth: 4, PixelsPerByte: 2, RegionOverhead: 0x10}},
	}
	_, err := r.DisplayReply(1, DisplayReplyIDListOverlayGfxCharacteristics, 0, nil, gfx)
	require.NoError(t, err)

	frame := send.last()
	require.True(t, len(frame) >= 4)
	assert.Equal(t, []byte{0x9F, 0x88, 0x02}, frame[0:3])
	assert.EqualValues(t, 0x0B, frame[3], "length prefix must be 0x0B")
	assert.Equal(t, []byte{0x88, 0x10}, frame[len(frame)-2:], "pixel-depth byte pair must be 0x88 0x10")
}

// 6. Unknown tag.
func TestDeliverUnknownTag(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)

	n, err := r.Deliver(0, 0, 0, []byte{0x9F, 0x88, 0xFF, 0x00})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedTag)
	assert.True(t, n < 0)
}

func TestDeliverShortData(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)

	n, err := r.Deliver(0, 0, 0, []byte{0x9F, 0x88})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShortData)
	assert.True(t, n < 0)
}

func TestMenuWithRawItems(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)
	var got MenuList
	r.RegisterMenuCallback(func(slot uint8, session uint16, menu MenuList) {
		got = menu
	})

	body := []byte{0xFF,
		0x9F, 0x88, 0x03, 0x01, 'T',
		0x9F, 0x88, 0x03, 0x01, 'S',
		0x9F, 0x88, 0x03, 0x01, 'B',
		0xDE, 0xAD, 0xBE, 0xEF,
	}
	pdu := append([]byte{0x9F, 0x88, 0x09, byte(len(body))}, body...)
	n, err := r.Deliver(0, 3, 0, pdu)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, got.ItemsRaw)
	assert.Nil(t, got.Items)
}

func TestAnswEncodesText(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)

	n, err := r.Answ(5, AnswIDAnswer, []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, []byte{0x9F, 0x88, 0x08, 0x03, AnswIDAnswer, 'h', 'i'}, send.last())
}

func TestAnswCancelHasNoText(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)

	_, err := r.Answ(5, AnswIDCancel, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x9F, 0x88, 0x08, 0x01, AnswIDCancel}, send.last())
}

func TestClearSessionUnlocksOnEveryPath(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 0)

	moreBody := []byte{0x00, 0x9F, 0x88, 0x03, 0x01, 'A'}
	morePDU := append([]byte{0x9F, 0x88, 0x0A, byte(len(moreBody))}, moreBody...)
	_, err := r.Deliver(0, 42, 0, morePDU)
	require.NoError(t, err)

	r.ClearSession(42)
	// A second ClearSession on an already-cleared session must not hang.
	r.ClearSession(42)

	_, ok := r.sessions[42]
	assert.False(t, ok)
}

func TestFragmentOverflow(t *testing.T) {
	send := &fakeSend{}
	r := New(send, nil, 4)

	moreBody := []byte{0x00, 0x9F, 0x88, 0x03, 0x05, '1', '2', '3', '4', '5'}
	morePDU := append([]byte{0x9F, 0x88, 0x0A, byte(len(moreBody))}, moreBody...)
	_, err := r.Deliver(0, 1, 0, morePDU)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFragmentOverflow)
}
