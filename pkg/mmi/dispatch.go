package mmi

import "github.com/dvbtux/mmi221/internal/asn1"

// Deliver is the dispatcher's entry point (spec.md §4.1). The session
// layer calls it once per whole application PDU it hands to this
// resource; data starts at the 3-byte object tag. data is valid only
// for the call's duration.
//
// It returns 0 on success, or a negative value alongside the error
// that caused it — ErrShortData if data is too short to hold a tag,
// ErrUnexpectedTag if the tag is outside the MMI object set. A parser
// error discards only the current PDU; no session state is touched.
func (r *Resource) Deliver(slotID uint8, sessionNumber uint16, resourceID uint32, data []byte) (int, error) {
	if len(data) < 3 {
		r.logger.Warn("[RX] short mmi pdu", "slot", slotID, "session", sessionNumber, "len", len(data))
		return -1, ErrShortData
	}
	tag := decodeTag(data)
	body := data[3:]

	r.logger.Debug("[RX] mmi pdu", "tag", tag.String(), "slot", slotID, "session", sessionNumber, "len", len(body))

	switch tag {
	case TagCloseMMI:
		return r.parseClose(slotID, sessionNumber, body)
	case TagDisplayControl:
		return r.parseDisplayControl(slotID, sessionNumber, body)
	case TagKeypadControl:
		return r.parseKeypadControl(slotID, sessionNumber, body)
	case TagEnq:
		return r.parseEnq(slotID, sessionNumber, body)
	case TagSceneEndMark:
		return r.parseSceneEndMark(slotID, sessionNumber, body)
	case TagSceneControl:
		return r.parseSceneControl(slotID, sessionNumber, body)
	case TagFlushDownload:
		return r.parseFlushDownload(slotID, sessionNumber, body)
	case TagMenuMore, TagMenuLast:
		return r.parseMenuOrList(slotID, sessionNumber, tag, body, true)
	case TagListMore, TagListLast:
		return r.parseMenuOrList(slotID, sessionNumber, tag, body, false)
	case TagSubtitleSegmentMore, TagSubtitleSegmentLast:
		return r.parseSubtitle(slotID, sessionNumber, tag, body, true)
	case TagSubtitleDownloadMore, TagSubtitleDownloadLast:
		return r.parseSubtitle(slotID, sessionNumber, tag, body, false)
	default:
		// Includes outgoing-only tags (display_reply, keypress, answ,
		// menu_answ, scene_done, download_reply) received inbound,
		// and anything outside the 24-entry object set.
		r.logger.Warn("[RX] received unexpected tag", "tag", tag, "slot", slotID, "session", sessionNumber)
		return -1, ErrUnexpectedTag
	}
}

// decodeBody reads the ASN.1 BER length prefix at the front of data
// and returns the body slice it frames, failing with
// ErrMalformedLength for an invalid prefix or ErrShortData if the
// declared length runs past the end of data.
func decodeBody(data []byte) ([]byte, error) {
	length, consumed, err := asn1.Decode(data)
	if err != nil {
		return nil, ErrMalformedLength
	}
	if uint32(len(data)-consumed) < length {
		return nil, ErrShortData
	}
	return data[consumed : consumed+int(length)], nil
}

func (r *Resource) parseClose(slot uint8, session uint16, data []byte) (int, error) {
	body, err := decodeBody(data)
	if err != nil {
		r.logger.Warn("[RX] malformed close_mmi payload", "slot", slot, "session", session, "error", err)
		return -1, err
	}
	if len(body) < 1 {
		r.logger.Warn("[RX] short close_mmi payload", "slot", slot, "session", session)
		return -1, ErrShortData
	}
	cmdID := body[0]
	var delay uint8
	if cmdID == CloseCmdIDDelay {
		if len(body) < 2 {
			r.logger.Warn("[RX] short close_mmi delay payload", "slot", slot, "session", session)
			return -1, ErrShortData
		}
		delay = body[1]
	}
	if cb := r.getClose(); cb != nil {
		cb(slot, session, cmdID, delay)
	}
	return 0, nil
}

func (r *Resource) parseDisplayControl(slot uint8, session uint16, data []byte) (int, error) {
	body, err := decodeBody(data)
	if err != nil {
		r.logger.Warn("[RX] malformed display_control payload", "slot", slot, "session", session, "error", err)
		return -1, err
	}
	if len(body) < 1 {
		r.logger.Warn("[RX] short display_control payload", "slot", slot, "session", session)
		return -1, ErrShortData
	}
	cmdID := body[0]
	var mmiMode uint8
	if cmdID == DisplayControlCmdIDSetMMIMode {
		if len(body) < 2 {
			r.logger.Warn("[RX] short display_control mmi_mode payload", "slot", slot, "session", session)
			return -1, ErrShortData
		}
		mmiMode = body[1]
	}
	if cb := r.getDisplayControl(); cb != nil {
		cb(slot, session, cmdID, mmiMode)
	}
	return 0, nil
}

func (r *Resource) parseKeypadControl(slot uint8, session uint16, data []byte) (int, error) {
	body, err := decodeBody(data)
	if err != nil {
		r.logger.Warn("[RX] malformed keypad_control payload", "slot", slot, "session", session, "error", err)
		return -1, err
	}
	if len(body) < 1 {
		r.logger.Warn("[RX] short keypad_control payload", "slot", slot, "session", session)
		return -1, ErrShortData
	}
	cmdID := body[0]
	keycodes := body[1:]
	if cb := r.getKeypadControl(); cb != nil {
		cb(slot, session, cmdID, keycodes)
	}
	return 0, nil
}

func (r *Resource) parseEnq(slot uint8, session uint16, data []byte) (int, error) {
	body, err := decodeBody(data)
	if err != nil {
		r.logger.Warn("[RX] malformed enq payload", "slot", slot, "session", session, "error", err)
		return -1, err
	}
	if len(body) < 2 {
		r.logger.Warn("[RX] short enq payload", "slot", slot, "session", session)
		return -1, ErrShortData
	}
	blindAnswer := body[0]&0x01 != 0
	answerLength := body[1]
	text := body[2:]
	if cb := r.getEnq(); cb != nil {
		cb(slot, session, blindAnswer, answerLength, text)
	}
	return 0, nil
}

// sceneFlags decomposes the single scene flags byte shared by
// scene_end_mark and scene_control (spec.md §4.2, §6): bit 7 =
// decoder_continue, bit 6 = scene_reveal, bit 5 = send_scene_done
// (end_mark only), low nibble = scene_tag.
func sceneFlags(b byte) (decoderContinue, sceneReveal, sendSceneDone bool, sceneTag uint8) {
	decoderContinue = b&0x80 != 0
	sceneReveal = b&0x40 != 0
	sendSceneDone = b&0x20 != 0
	sceneTag = b & 0x0F
	return
}

func (r *Resource) parseSceneEndMark(slot uint8, session uint16, data []byte) (int, error) {
	body, err := decodeBody(data)
	if err != nil {
		r.logger.Warn("[RX] malformed scene_end_mark payload", "slot", slot, "session", session, "error", err)
		return -1, err
	}
	if len(body) != 1 {
		r.logger.Warn("[RX] short scene_end_mark payload", "slot", slot, "session", session)
		return -1, ErrShortData
	}
	decoderContinue, sceneReveal, sendSceneDone, sceneTag := sceneFlags(body[0])
	if cb := r.getSceneEndMark(); cb != nil {
		cb(slot, session, decoderContinue, sceneReveal, sendSceneDone, sceneTag)
	}
	return 0, nil
}

func (r *Resource) parseSceneControl(slot uint8, session uint16, data []byte) (int, error) {
	body, err := decodeBody(data)
	if err != nil {
		r.logger.Warn("[RX] malformed scene_control payload", "slot", slot, "session", session, "error", err)
		return -1, err
	}
	if len(body) != 1 {
		r.logger.Warn("[RX] short scene_control payload", "slot", slot, "session", session)
		return -1, ErrShortData
	}
	decoderContinue, sceneReveal, _, sceneTag := sceneFlags(body[0])
	if cb := r.getSceneControl(); cb != nil {
		cb(slot, session, decoderContinue, sceneReveal, sceneTag)
	}
	return 0, nil
}

func (r *Resource) parseFlushDownload(slot uint8, session uint16, data []byte) (int, error) {
	body, err := decodeBody(data)
	if err != nil {
		r.logger.Warn("[RX] malformed flush_download payload", "slot", slot, "session", session, "error", err)
		return -1, err
	}
	if len(body) != 1 || body[0] != 0x00 {
		r.logger.Warn("[RX] short flush_download payload", "slot", slot, "session", session)
		return -1, ErrShortData
	}
	if cb := r.getFlushDownload(); cb != nil {
		cb(slot, session)
	}
	return 0, nil
}

func (r *Resource) parseMenuOrList(slot uint8, session uint16, tag Tag, data []byte, isMenu bool) (int, error) {
	body, err := decodeBody(data)
	if err != nil {
		r.logger.Warn("[RX] malformed menu/list payload", "tag", tag.String(), "slot", slot, "session", session, "error", err)
		return -1, err
	}
	isLast := tag == TagMenuLast || tag == TagListLast

	r.mu.Lock()
	out, ferr := r.defragment(session, tag, isLast, body)
	r.mu.Unlock()
	if ferr != nil {
		r.logger.Warn("[RX] menu/list defragment failed", "tag", tag.String(), "slot", slot, "session", session, "error", ferr)
		return -1, ferr
	}
	if out.kind == outcomePending {
		return 0, nil
	}

	menuList, err := parseMenuListPayload(out.data)
	if err != nil {
		r.logger.Warn("[RX] malformed menu/list body", "tag", tag.String(), "slot", slot, "session", session, "error", err)
		return -1, err
	}

	if isMenu {
		if cb := r.getMenu(); cb != nil {
			cb(slot, session, menuList)
		}
	} else {
		if cb := r.getList(); cb != nil {
			cb(slot, session, menuList)
		}
	}
	return 0, nil
}

// parseMenuListPayload decodes a reassembled menu_last/list_last body
// (spec.md §4.3, step 3): a choice_nb byte, three title strings
// (title, subtitle, bottom), then either choice_nb further item
// strings or — when choice_nb is 0xFF — a raw items blob the caller
// interprets itself.
func parseMenuListPayload(data []byte) (MenuList, error) {
	if len(data) < 1 {
		return MenuList{}, ErrShortData
	}
	choiceNb := data[0]
	cursor := newTextCursor(data[1:])

	title, err := cursor.next()
	if err != nil {
		return MenuList{}, err
	}
	subtitle, err := cursor.next()
	if err != nil {
		return MenuList{}, err
	}
	bottom, err := cursor.next()
	if err != nil {
		return MenuList{}, err
	}

	ml := MenuList{Title: title, Subtitle: subtitle, Bottom: bottom}

	if choiceNb == 0xFF {
		ml.ItemsRaw = cursor.remainder()
		return ml, nil
	}

	items := make([]Text, 0, choiceNb)
	for i := 0; i < int(choiceNb); i++ {
		item, err := cursor.next()
		if err != nil {
			return MenuList{}, err
		}
		items = append(items, item)
	}
	ml.ItemCount = int(choiceNb)
	ml.Items = items
	return ml, nil
}

func (r *Resource) parseSubtitle(slot uint8, session uint16, tag Tag, data []byte, isSegment bool) (int, error) {
	body, err := decodeBody(data)
	if err != nil {
		r.logger.Warn("[RX] malformed subtitle payload", "tag", tag.String(), "slot", slot, "session", session, "error", err)
		return -1, err
	}
	isLast := tag == TagSubtitleSegmentLast || tag == TagSubtitleDownloadLast

	r.mu.Lock()
	out, ferr := r.defragment(session, tag, isLast, body)
	r.mu.Unlock()
	if ferr != nil {
		r.logger.Warn("[RX] subtitle defragment failed", "tag", tag.String(), "slot", slot, "session", session, "error", ferr)
		return -1, ferr
	}
	if out.kind == outcomePending {
		return 0, nil
	}

	if isSegment {
		if cb := r.getSubtitleSegment(); cb != nil {
			cb(slot, session, out.data)
		}
	} else {
		if cb := r.getSubtitleDownload(); cb != nil {
			cb(slot, session, out.data)
		}
	}
	return 0, nil
}
