package mmi

import "fmt"

// Tag is a 24-bit EN 50221 MMI object identifier, always in the
// 0x9F88xx range. It is transmitted big-endian as the first three
// bytes of every application PDU this resource understands.
type Tag uint32

// The complete MMI object set (spec.md §3). "last"/"more" pairs are the
// terminator/continuation halves of a fragmentable object.
const (
	TagCloseMMI              Tag = 0x9F8800
	TagDisplayControl        Tag = 0x9F8801
	TagDisplayReply          Tag = 0x9F8802
	TagTextLast              Tag = 0x9F8803
	TagTextMore              Tag = 0x9F8804
	TagKeypadControl         Tag = 0x9F8805
	TagKeypress              Tag = 0x9F8806
	TagEnq                   Tag = 0x9F8807
	TagAnsw                  Tag = 0x9F8808
	TagMenuLast              Tag = 0x9F8809
	TagMenuMore              Tag = 0x9F880A
	TagMenuAnsw              Tag = 0x9F880B
	TagListLast              Tag = 0x9F880C
	TagListMore              Tag = 0x9F880D
	TagSubtitleSegmentLast   Tag = 0x9F880E
	TagSubtitleSegmentMore   Tag = 0x9F880F
	TagDisplayMessage        Tag = 0x9F8810
	TagSceneEndMark          Tag = 0x9F8811
	TagSceneDone             Tag = 0x9F8812
	TagSceneControl          Tag = 0x9F8813
	TagSubtitleDownloadLast  Tag = 0x9F8814
	TagSubtitleDownloadMore  Tag = 0x9F8815
	TagFlushDownload         Tag = 0x9F8816
	TagDownloadReply         Tag = 0x9F8817
)

var tagNames = map[Tag]string{
	TagCloseMMI:             "close_mmi",
	TagDisplayControl:       "display_control",
	TagDisplayReply:         "display_reply",
	TagTextLast:             "text_last",
	TagTextMore:             "text_more",
	TagKeypadControl:        "keypad_control",
	TagKeypress:             "keypress",
	TagEnq:                  "enq",
	TagAnsw:                 "answ",
	TagMenuLast:             "menu_last",
	TagMenuMore:             "menu_more",
	TagMenuAnsw:             "menu_answ",
	TagListLast:             "list_last",
	TagListMore:             "list_more",
	TagSubtitleSegmentLast:  "subtitle_segment_last",
	TagSubtitleSegmentMore:  "subtitle_segment_more",
	TagDisplayMessage:       "display_message",
	TagSceneEndMark:         "scene_end_mark",
	TagSceneDone:            "scene_done",
	TagSceneControl:         "scene_control",
	TagSubtitleDownloadLast: "subtitle_download_last",
	TagSubtitleDownloadMore: "subtitle_download_more",
	TagFlushDownload:        "flush_download",
	TagDownloadReply:        "download_reply",
}

// String renders the tag's object name, or a hex fallback for a value
// outside the table (the caller will usually have already rejected it
// as ErrUnexpectedTag by that point).
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%06X", uint32(t))
}

// decodeTag reads a big-endian 24-bit tag from the front of buf.
// Callers must ensure len(buf) >= 3.
func decodeTag(buf []byte) Tag {
	return Tag(uint32(buf[0])<<16 | uint32(buf[1])<<8 | uint32(buf[2]))
}

// encode writes the tag's 3 big-endian bytes into dst[0:3].
// Callers must ensure len(dst) >= 3.
func (t Tag) encode(dst []byte) {
	dst[0] = byte(t >> 16)
	dst[1] = byte(t >> 8)
	dst[2] = byte(t)
}

// cmd_id / reply_id / answ_id enumerators from the original source's
// en50221_app_mmi.h (not retrieved in the reference pack; values below
// follow the published EN 50221 / dvb-apps numbering — see DESIGN.md).
const (
	CloseCmdIDImmediate uint8 = 0x00
	CloseCmdIDDelay     uint8 = 0x01

	DisplayControlCmdIDSetMMIMode                     uint8 = 0x01
	DisplayControlCmdIDDisplayCharTableList            uint8 = 0x02
	DisplayControlCmdIDInputCharTableList              uint8 = 0x03
	DisplayControlCmdIDOverlayGfxCharacteristics       uint8 = 0x04
	DisplayControlCmdIDFullscreenGfxCharacteristics    uint8 = 0x05

	MMIModeHighLevel            uint8 = 0x01
	MMIModeLowLevel             uint8 = 0x02
	MMIModeHighLevelWithGraphics uint8 = 0x03

	DisplayReplyIDMMIModeAck                        uint8 = 0x01
	DisplayReplyIDListDisplayCharTables             uint8 = 0x02
	DisplayReplyIDListInputCharTables               uint8 = 0x03
	DisplayReplyIDListOverlayGfxCharacteristics     uint8 = 0x04
	DisplayReplyIDListFullscreenGfxCharacteristics  uint8 = 0x05
	DisplayReplyIDUnknownCmdID                      uint8 = 0xF0
	DisplayReplyIDUnknownMMIMode                    uint8 = 0xF1
	DisplayReplyIDUnknownCharTable                  uint8 = 0xF2
	DisplayReplyIDUnknownGfxConfig                  uint8 = 0xF3

	AnswIDAnswer uint8 = 0x01
	AnswIDCancel uint8 = 0x00
)
