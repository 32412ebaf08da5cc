package mmi

import "github.com/dvbtux/mmi221/internal/asn1"

// textCursor walks a chain of TEXT_MORE/TEXT_LAST records embedded in
// a reassembled menu/list payload, extracting one text string at a
// time (spec.md §4.5, the "Text Defragmenter"). It is independent of
// the per-session Defragmenter: that one joins *_MORE/*_LAST fragments
// of the outer menu/list object itself, this one joins the nested
// TEXT_* records once the outer object is already whole.
type textCursor struct {
	data []byte
	pos  int
}

func newTextCursor(data []byte) *textCursor {
	return &textCursor{data: data}
}

// remainder returns whatever is left unconsumed — used for the raw
// items blob in a choice_nb == 0xFF menu/list.
func (c *textCursor) remainder() []byte {
	return c.data[c.pos:]
}

// next extracts the next text string, advancing the cursor past it.
// A TEXT_LAST with nothing accumulated before it returns its payload
// borrowed (no allocation); a TEXT_LAST preceded by one or more
// TEXT_MORE records returns the joined accumulator, owned. Any other
// tag, an invalid/short length, or input exhausted mid-record fails
// with ErrUnexpectedTag, ErrMalformedLength, or ErrShortData
// respectively.
func (c *textCursor) next() (Text, error) {
	var acc []byte

	for {
		if len(c.data)-c.pos < 3 {
			return Text{}, ErrShortData
		}
		tag := decodeTag(c.data[c.pos:])
		c.pos += 3

		if tag != TagTextLast && tag != TagTextMore {
			return Text{}, ErrUnexpectedTag
		}

		length, consumed, err := asn1.Decode(c.data[c.pos:])
		if err != nil {
			return Text{}, ErrMalformedLength
		}
		c.pos += consumed
		if uint32(len(c.data)-c.pos) < length {
			return Text{}, ErrShortData
		}
		payload := c.data[c.pos : c.pos+int(length)]
		c.pos += int(length)

		if tag == TagTextLast {
			if acc == nil {
				return Text{Data: payload, Owned: false}, nil
			}
			acc = append(acc, payload...)
			return Text{Data: acc, Owned: true}, nil
		}

		// TEXT_MORE: accumulate and keep reading.
		if acc == nil {
			acc = make([]byte, 0, len(payload))
		}
		acc = append(acc, payload...)
	}
}
