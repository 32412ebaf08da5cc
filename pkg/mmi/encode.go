package mmi

import "github.com/dvbtux/mmi221/internal/asn1"

// GfxPixelDepth is one entry in a graphics-characteristics reply's
// pixel-depth table (spec.md §4.6). Each entry packs to two bytes:
// display_depth (3b) and pixels_per_byte (3b) in the high bits of the
// first byte, then region_overhead filling the second byte whole.
type GfxPixelDepth struct {
	DisplayDepth   uint8
	PixelsPerByte  uint8
	RegionOverhead uint8
}

// GfxCharacteristics is the body of an overlay/fullscreen graphics
// characteristics display_reply (spec.md §4.6). Width/height, the
// aspect-ratio/relation/multiple-depths byte, and the three nibble-
// packed byte-count fields mirror the source's header layout exactly;
// see DESIGN.md for the Open Question on the three byte-count fields'
// intended width (12-bit vs 16-bit) — this preserves the bit layout
// verbatim rather than silently widening it.
type GfxCharacteristics struct {
	Width              uint16
	Height             uint16
	AspectRatio        uint8 // 4 bits
	GfxRelationToVideo uint8 // 3 bits
	MultipleDepths     bool

	DisplayBytes           uint32
	CompositionBufferBytes uint32
	ObjectCacheBytes       uint32

	PixelDepths []GfxPixelDepth
}

// CharTable is the body of a display/input char-table-list
// display_reply: the raw table bytes, sent unparsed (spec.md §4.6).
type CharTable struct {
	Table []byte
}

// Close sends a close_mmi object (spec.md §4.2). cmdID selects
// immediate (CloseCmdIDImmediate, 1-byte body) or delayed
// (CloseCmdIDDelay, 2-byte body with delay appended) closure.
func (r *Resource) Close(session uint16, cmdID, delay uint8) (int, error) {
	buf := make([]byte, 6)
	TagCloseMMI.encode(buf)
	buf[3] = 1
	buf[4] = cmdID
	n := 5
	if cmdID == CloseCmdIDDelay {
		buf[3] = 2
		buf[5] = delay
		n = 6
	}
	r.logger.Debug("[TX] close_mmi", "session", session, "cmd_id", cmdID, "delay", delay)
	return r.send.Send(session, buf[:n])
}

// Keypress sends a keypress object (spec.md §4.2): a single keycode
// byte.
func (r *Resource) Keypress(session uint16, keycode uint8) (int, error) {
	buf := make([]byte, 5)
	TagKeypress.encode(buf)
	buf[3] = 1
	buf[4] = keycode
	r.logger.Debug("[TX] keypress", "session", session, "keycode", keycode)
	return r.send.Send(session, buf)
}

// DisplayMessage sends a display_message object (spec.md §4.2): a
// single message-id byte.
func (r *Resource) DisplayMessage(session uint16, id uint8) (int, error) {
	buf := make([]byte, 5)
	TagDisplayMessage.encode(buf)
	buf[3] = 1
	buf[4] = id
	r.logger.Debug("[TX] display_message", "session", session, "id", id)
	return r.send.Send(session, buf)
}

// SceneDone sends a scene_done object (spec.md §4.2): decoder_continue
// and scene_reveal each one bit, scene_tag the low nibble — the same
// flag byte layout parseSceneEndMark decodes on the way in.
func (r *Resource) SceneDone(session uint16, decoderContinue, sceneReveal bool, sceneTag uint8) (int, error) {
	buf := make([]byte, 5)
	TagSceneDone.encode(buf)
	buf[3] = 1
	var flags uint8
	if decoderContinue {
		flags |= 0x80
	}
	if sceneReveal {
		flags |= 0x40
	}
	flags |= sceneTag & 0x0F
	buf[4] = flags
	r.logger.Debug("[TX] scene_done", "session", session, "decoder_continue", decoderContinue, "scene_reveal", sceneReveal, "scene_tag", sceneTag)
	return r.send.Send(session, buf)
}

// DownloadReply sends a download_reply object (spec.md §4.2):
// object_id (big-endian 16-bit) followed by a one-byte reply id.
func (r *Resource) DownloadReply(session uint16, objectID uint16, replyID uint8) (int, error) {
	buf := make([]byte, 7)
	TagDownloadReply.encode(buf)
	buf[3] = 3
	buf[4] = byte(objectID >> 8)
	buf[5] = byte(objectID)
	buf[6] = replyID
	r.logger.Debug("[TX] download_reply", "session", session, "object_id", objectID, "reply_id", replyID)
	return r.send.Send(session, buf)
}

// MenuAnsw sends a menu_answ object (spec.md §4.3): a single
// choice-reference byte.
func (r *Resource) MenuAnsw(session uint16, choiceRef uint8) (int, error) {
	buf := make([]byte, 5)
	TagMenuAnsw.encode(buf)
	buf[3] = 1
	buf[4] = choiceRef
	r.logger.Debug("[TX] menu_answ", "session", session, "choice_ref", choiceRef)
	return r.send.Send(session, buf)
}

// Answ sends an answ object (spec.md §4.2). AnswIDAnswer carries text
// and is sent vectored (header plus the text body as a second chunk,
// matching the source's iovec split so a large answer never needs
// copying into one buffer); any other answ_id — notably AnswIDCancel —
// has no text and is sent as a single fixed 5-byte buffer.
func (r *Resource) Answ(session uint16, answID uint8, text []byte) (int, error) {
	if answID != AnswIDAnswer {
		buf := make([]byte, 5)
		TagAnsw.encode(buf)
		buf[3] = 1
		buf[4] = answID
		r.logger.Debug("[TX] answ", "session", session, "answ_id", answID)
		return r.send.Send(session, buf)
	}

	header := make([]byte, 3+asn1.MaxEncodedLen+1)
	TagAnsw.encode(header)
	n, err := asn1.Encode(uint32(len(text))+1, header[3:], 3)
	if err != nil {
		return -1, err
	}
	header[3+n] = answID
	header = header[:3+n+1]
	r.logger.Debug("[TX] answ", "session", session, "answ_id", answID, "text_len", len(text))
	return r.send.SendVectored(session, [][]byte{header, text})
}

// DisplayReply sends a display_reply object (spec.md §4.6). The body
// layout is entirely determined by replyID: MMI_MODE_ACK carries a
// fixed 2-byte body, the char-table replies carry the table
// unconverted as a second vectored chunk, the graphics-characteristics
// replies carry the packed header described by GfxCharacteristics, and
// any other reply id (the UNKNOWN_* ids) carries just the id itself.
func (r *Resource) DisplayReply(session uint16, replyID uint8, mmiMode uint8, charTable *CharTable, gfx *GfxCharacteristics) (int, error) {
	switch replyID {
	case DisplayReplyIDMMIModeAck:
		buf := make([]byte, 6)
		TagDisplayReply.encode(buf)
		buf[3] = 2
		buf[4] = replyID
		buf[5] = mmiMode
		r.logger.Debug("[TX] display_reply", "session", session, "reply_id", replyID, "mmi_mode", mmiMode)
		return r.send.Send(session, buf)

	case DisplayReplyIDListDisplayCharTables, DisplayReplyIDListInputCharTables:
		header := make([]byte, 3+asn1.MaxEncodedLen+1)
		TagDisplayReply.encode(header)
		n, err := asn1.Encode(uint32(len(charTable.Table))+1, header[3:], 3)
		if err != nil {
			return -1, err
		}
		header[3+n] = replyID
		header = header[:3+n+1]
		r.logger.Debug("[TX] display_reply", "session", session, "reply_id", replyID, "table_len", len(charTable.Table))
		return r.send.SendVectored(session, [][]byte{header, charTable.Table})

	case DisplayReplyIDListOverlayGfxCharacteristics, DisplayReplyIDListFullscreenGfxCharacteristics:
		return r.displayReplyGfx(session, replyID, gfx)

	default:
		buf := make([]byte, 5)
		TagDisplayReply.encode(buf)
		buf[3] = 1
		buf[4] = replyID
		r.logger.Debug("[TX] display_reply", "session", session, "reply_id", replyID)
		return r.send.Send(session, buf)
	}
}

// displayReplyGfx packs the 9-byte graphics header plus its
// pixel-depth table (spec.md §4.6). The length prefix counts the
// header and pixel-depth bytes only, not the reply_id byte that
// precedes them — see DESIGN.md for why this departs from the
// source's asn_1_encode(1+9+pixels*2, ...) call.
func (r *Resource) displayReplyGfx(session uint16, replyID uint8, gfx *GfxCharacteristics) (int, error) {
	header := make([]byte, 3+asn1.MaxEncodedLen+1+9)
	TagDisplayReply.encode(header)

	bodyLen := uint32(9 + len(gfx.PixelDepths)*2)
	n, err := asn1.Encode(bodyLen, header[3:], 3)
	if err != nil {
		return -1, err
	}
	off := 3 + n
	header[off] = replyID
	off++

	header[off+0] = byte(gfx.Width >> 8)
	header[off+1] = byte(gfx.Width)
	header[off+2] = byte(gfx.Height >> 8)
	header[off+3] = byte(gfx.Height)
	header[off+4] = (gfx.AspectRatio&0x0F)<<4 | (gfx.GfxRelationToVideo&0x07)<<1 | boolBit(gfx.MultipleDepths)
	header[off+5] = byte(gfx.DisplayBytes >> 4)
	header[off+6] = byte(gfx.DisplayBytes&0x0F)<<4 | byte((gfx.CompositionBufferBytes&0xF0)>>4)
	header[off+7] = byte(gfx.CompositionBufferBytes&0x0F)<<4 | byte((gfx.ObjectCacheBytes&0xF0)>>4)
	header[off+8] = byte(gfx.ObjectCacheBytes&0x0F)<<4 | byte(len(gfx.PixelDepths)&0x0F)
	header = header[:off+9]

	pixelDepths := make([]byte, len(gfx.PixelDepths)*2)
	for i, pd := range gfx.PixelDepths {
		pixelDepths[i*2] = (pd.DisplayDepth&0x07)<<5 | (pd.PixelsPerByte&0x07)<<2
		pixelDepths[i*2+1] = pd.RegionOverhead
	}

	r.logger.Debug("[TX] display_reply", "session", session, "reply_id", replyID, "pixel_depths", len(gfx.PixelDepths))
	return r.send.SendVectored(session, [][]byte{header, pixelDepths})
}

func boolBit(b bool) byte {
	if b {
		return 1
	}
	return 0
}
