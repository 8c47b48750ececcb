// Package codepage identifies character encodings by their legacy
// Windows / IANA code page number and decodes byte slices with them.
//
// The package distinguishes three tiers of support:
//   - Unicode encodings (UTF-8, UTF-16 LE/BE, UTF-32 LE/BE) are fully decoded.
//   - Single-byte legacy encodings with a known mapping table are decoded
//     through golang.org/x/text (plus local IA5 national-variant tables).
//   - The remaining ASCII-compatible code pages are recognized as labels
//     only; decoding them falls back to US-ASCII or UTF-8.
package codepage

// CodePage is a numeric character-encoding identifier in the legacy
// Windows code page namespace. The zero value means "unknown / none".
type CodePage uint16

// None is the absent code page. Functions taking an optional code page
// treat None as "no assumption".
const None CodePage = 0

// Code pages the classifier can name as a detection outcome.
const (
	UTF16LE      CodePage = 1200
	UTF16BE      CodePage = 1201
	Windows1252  CodePage = 1252
	IA5          CodePage = 20105
	IA5German    CodePage = 20106
	IA5Swedish   CodePage = 20107
	IA5Norwegian CodePage = 20108
	ASCII        CodePage = 20127
	Latin1       CodePage = 28591 // ISO-8859-1
	Latin9       CodePage = 28605 // ISO-8859-15
	UTF32LE      CodePage = 12000
	UTF32BE      CodePage = 12001
	UTF8         CodePage = 65001
)

// IsUnicode reports whether cp is one of the Unicode encodings.
func (cp CodePage) IsUnicode() bool {
	switch cp {
	case UTF8, UTF16LE, UTF16BE, UTF32LE, UTF32BE:
		return true
	}
	return false
}

// IsWide reports whether cp is a multi-byte-unit Unicode encoding
// (UTF-16 or UTF-32, either byte order). UTF-8 is not wide: its code
// units are single bytes and it is ASCII-compatible.
func (cp CodePage) IsWide() bool {
	switch cp {
	case UTF16LE, UTF16BE, UTF32LE, UTF32BE:
		return true
	}
	return false
}

// IsIA5 reports whether cp is one of the 7-bit ISO 646 national variants
// with repurposed punctuation positions.
func (cp CodePage) IsIA5() bool {
	switch cp {
	case IA5German, IA5Swedish, IA5Norwegian:
		return true
	}
	return false
}

// String returns a lowercase IANA-style label for known code pages and
// a "cp<number>" placeholder for the rest.
func (cp CodePage) String() string {
	if name, ok := names[cp]; ok {
		return name
	}
	if cp == None {
		return "none"
	}
	return "cp" + itoa(uint16(cp))
}

// itoa avoids pulling strconv into the hot String path for a uint16.
func itoa(v uint16) string {
	if v == 0 {
		return "0"
	}
	var buf [5]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

var names = map[CodePage]string{
	UTF8:         "utf-8",
	UTF16LE:      "utf-16le",
	UTF16BE:      "utf-16be",
	UTF32LE:      "utf-32le",
	UTF32BE:      "utf-32be",
	ASCII:        "us-ascii",
	Windows1252:  "windows-1252",
	Latin1:       "iso-8859-1",
	Latin9:       "iso-8859-15",
	IA5:          "ia5-irv",
	IA5German:    "ia5-german",
	IA5Swedish:   "ia5-swedish",
	IA5Norwegian: "ia5-norwegian",
	437:          "ibm437",
	850:          "ibm850",
	852:          "ibm852",
	855:          "ibm855",
	858:          "ibm858",
	860:          "ibm860",
	862:          "ibm862",
	863:          "ibm863",
	865:          "ibm865",
	866:          "ibm866",
	874:          "windows-874",
	1250:         "windows-1250",
	1251:         "windows-1251",
	1253:         "windows-1253",
	1254:         "windows-1254",
	1255:         "windows-1255",
	1256:         "windows-1256",
	1257:         "windows-1257",
	1258:         "windows-1258",
	10000:        "macintosh",
	10007:        "x-mac-cyrillic",
	20866:        "koi8-r",
	21866:        "koi8-u",
	28592:        "iso-8859-2",
	28593:        "iso-8859-3",
	28594:        "iso-8859-4",
	28595:        "iso-8859-5",
	28596:        "iso-8859-6",
	28597:        "iso-8859-7",
	28598:        "iso-8859-8",
	28599:        "iso-8859-9",
	28603:        "iso-8859-13",
}
