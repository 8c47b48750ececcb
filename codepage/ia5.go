package codepage

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// IA5 national variants (ISO/IEC 646) are 7-bit encodings that reassign
// the ASCII punctuation positions @ [ \ ] ^ ` { | } ~ to national
// letters. golang.org/x/text carries no tables for them, so the three
// variants the classifier names are provided here as ordinary
// encoding.Encoding values and registered alongside the charmap set.

// ia5Encoding decodes a 7-bit national variant. overlay maps the
// repurposed byte positions to their national letters; all other bytes
// below 0x80 decode as themselves and bytes above are undefined.
type ia5Encoding struct {
	overlay map[byte]rune
}

var (
	ia5GermanEnc encoding.Encoding = &ia5Encoding{overlay: map[byte]rune{
		'@': '§',
		'[': 'Ä',
		'\\': 'Ö',
		']': 'Ü',
		'{': 'ä',
		'|': 'ö',
		'}': 'ü',
		'~': 'ß',
	}}
	ia5SwedishEnc encoding.Encoding = &ia5Encoding{overlay: map[byte]rune{
		'@': 'É',
		'[': 'Ä',
		'\\': 'Ö',
		']': 'Å',
		'^': 'Ü',
		'`': 'é',
		'{': 'ä',
		'|': 'ö',
		'}': 'å',
		'~': 'ü',
	}}
	ia5NorwegianEnc encoding.Encoding = &ia5Encoding{overlay: map[byte]rune{
		'[': 'Æ',
		'\\': 'Ø',
		']': 'Å',
		'{': 'æ',
		'|': 'ø',
		'}': 'å',
	}}
)

func (e *ia5Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &ia5Decoder{enc: e}}
}

func (e *ia5Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &ia5Encoder{enc: e}}
}

type ia5Decoder struct {
	transform.NopResetter
	enc *ia5Encoding
}

func (d *ia5Decoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		r := rune(b)
		switch {
		case b >= 0x80:
			r = utf8.RuneError
		default:
			if o, ok := d.enc.overlay[b]; ok {
				r = o
			}
		}
		n := utf8.RuneLen(r)
		if nDst+n > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}
	return nDst, nSrc, nil
}

type ia5Encoder struct {
	transform.NopResetter
	enc *ia5Encoding
}

func (e *ia5Encoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	reverse := make(map[rune]byte, len(e.enc.overlay))
	displaced := make(map[byte]struct{}, len(e.enc.overlay))
	for b, r := range e.enc.overlay {
		reverse[r] = b
		displaced[b] = struct{}{}
	}
	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}
		out := byte('?')
		switch {
		case r < 0x80:
			out = byte(r)
			if _, taken := displaced[out]; taken {
				out = '?'
			}
		default:
			if b, ok := reverse[r]; ok {
				out = b
			}
		}
		if nDst+1 > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = out
		nDst++
		nSrc += size
	}
	return nDst, nSrc, nil
}
