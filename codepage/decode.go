package codepage

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Decode converts b to text using the code page cp. Bytes that have no
// mapping under cp decode to U+FFFD; decoding never fails. A code page
// that is named but not decodable falls back to lenient UTF-8, which
// covers its ASCII half.
func Decode(cp CodePage, b []byte) string {
	if len(b) == 0 {
		return ""
	}
	switch cp {
	case UTF8, None:
		return decodeUTF8(b)
	case ASCII, IA5:
		return decodeASCII(b)
	case UTF16LE:
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), b)
	case UTF16BE:
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), b)
	case UTF32LE:
		return decodeWith(utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM), b)
	case UTF32BE:
		return decodeWith(utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM), b)
	}
	if enc, ok := Lookup(cp); ok {
		return decodeWith(enc, b)
	}
	return decodeUTF8(b)
}

func decodeWith(enc encoding.Encoding, b []byte) string {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return decodeUTF8(b)
	}
	return string(out)
}

func decodeASCII(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		if c < 0x80 {
			sb.WriteByte(c)
		} else {
			sb.WriteRune(utf8.RuneError)
		}
	}
	return sb.String()
}

func decodeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
