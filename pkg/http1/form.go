package http1

import "strings"

// Param is one key/value pair from a query string or urlencoded body.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered sequence of key/value pairs. Order of appearance is
// preserved; lookups return the first pair with a matching key.
type Params []Param

// Get returns the value of the first pair with the given key.
func (ps Params) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Value returns the value of the first pair with the given key, or "".
func (ps Params) Value(key string) string {
	v, _ := ps.Get(key)
	return v
}

// DecodeForm decodes an application/x-www-form-urlencoded string into ordered
// pairs. Pairs are split on "&", each pair on the first "=", and both sides
// are percent-decoded ("+" becomes a space, "%XY" becomes byte XY).
//
// Leniency policy: a malformed percent sequence (non-hex digits, or a "%"
// truncated at the end of the input) decodes literally rather than failing
// the whole parse. Query strings are decoded with this same algorithm.
func DecodeForm(s string) Params {
	if s == "" {
		return nil
	}
	var ps Params
	for len(s) > 0 {
		pair := s
		if i := strings.IndexByte(s, '&'); i >= 0 {
			pair, s = s[:i], s[i+1:]
		} else {
			s = ""
		}
		if pair == "" {
			continue
		}
		key, value := pair, ""
		if i := strings.IndexByte(pair, '='); i >= 0 {
			key, value = pair[:i], pair[i+1:]
		}
		ps = append(ps, Param{Key: unescape(key), Value: unescape(value)})
	}
	return ps
}

// EncodeForm encodes ordered pairs as application/x-www-form-urlencoded.
// Decoding the result with DecodeForm reproduces the original pairs exactly.
func EncodeForm(ps Params) string {
	var b []byte
	for i, p := range ps {
		if i > 0 {
			b = append(b, '&')
		}
		b = appendEscaped(b, p.Key)
		b = append(b, '=')
		b = appendEscaped(b, p.Value)
	}
	return string(b)
}

// unescape percent-decodes s, passing malformed sequences through literally.
func unescape(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '+':
			b = append(b, ' ')
		case '%':
			if i+2 < len(s) {
				hi, okHi := unhex(s[i+1])
				lo, okLo := unhex(s[i+2])
				if okHi && okLo {
					b = append(b, hi<<4|lo)
					i += 2
					continue
				}
			}
			b = append(b, c) // malformed: pass through
		default:
			b = append(b, c)
		}
	}
	return string(b)
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

const upperHex = "0123456789ABCDEF"

// appendEscaped percent-encodes s. Unreserved bytes pass through, a space
// becomes "+", everything else becomes %XY.
func appendEscaped(b []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ':
			b = append(b, '+')
		case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9',
			c == '-', c == '_', c == '.', c == '~':
			b = append(b, c)
		default:
			b = append(b, '%', upperHex[c>>4], upperHex[c&0x0f])
		}
	}
	return b
}
