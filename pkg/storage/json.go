package storage

import "strconv"

// EncodeEntriesJSON serializes entries to a JSON array, preserving order.
// The id field is emitted as a number; all other fields are strings. An empty
// sequence encodes to "[]". Inside strings the encoder escapes the quote,
// backslash, backspace, form-feed, newline, carriage-return and tab bytes;
// everything else passes through unchanged, so multi-byte UTF-8 content is
// preserved byte-for-byte.
func EncodeEntriesJSON(entries []Entry) []byte {
	b := make([]byte, 0, 64*len(entries)+2)
	b = append(b, '[')
	for i, e := range entries {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, `{"id":`...)
		b = strconv.AppendInt(b, e.ID, 10)
		b = append(b, `,"title":`...)
		b = appendJSONString(b, e.Title)
		b = append(b, `,"content":`...)
		b = appendJSONString(b, e.Content)
		b = append(b, `,"entry_date":`...)
		b = appendJSONString(b, e.EntryDate)
		b = append(b, `,"created_at":`...)
		b = appendJSONString(b, e.CreatedAt)
		b = append(b, '}')
	}
	return append(b, ']')
}

// appendJSONString appends s as a quoted, escaped JSON string.
func appendJSONString(b []byte, s string) []byte {
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b = append(b, '\\', '"')
		case '\\':
			b = append(b, '\\', '\\')
		case '\b':
			b = append(b, '\\', 'b')
		case '\f':
			b = append(b, '\\', 'f')
		case '\n':
			b = append(b, '\\', 'n')
		case '\r':
			b = append(b, '\\', 'r')
		case '\t':
			b = append(b, '\\', 't')
		default:
			b = append(b, c)
		}
	}
	return append(b, '"')
}
