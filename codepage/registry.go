package codepage

import (
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// The registry maps decodable single-byte code pages to their
// golang.org/x/text encodings (plus the local IA5 tables). It is
// process-wide state, built exactly once on first use; registration is
// idempotent and safe under concurrent callers.
var (
	registryOnce sync.Once
	registry     map[CodePage]encoding.Encoding
	asciiCompat  map[CodePage]struct{}
)

func initRegistry() {
	registry = map[CodePage]encoding.Encoding{
		437:          charmap.CodePage437,
		850:          charmap.CodePage850,
		852:          charmap.CodePage852,
		855:          charmap.CodePage855,
		858:          charmap.CodePage858,
		860:          charmap.CodePage860,
		862:          charmap.CodePage862,
		863:          charmap.CodePage863,
		865:          charmap.CodePage865,
		866:          charmap.CodePage866,
		874:          charmap.Windows874,
		1250:         charmap.Windows1250,
		1251:         charmap.Windows1251,
		Windows1252:  charmap.Windows1252,
		1253:         charmap.Windows1253,
		1254:         charmap.Windows1254,
		1255:         charmap.Windows1255,
		1256:         charmap.Windows1256,
		1257:         charmap.Windows1257,
		1258:         charmap.Windows1258,
		10000:        charmap.Macintosh,
		10007:        charmap.MacintoshCyrillic,
		20866:        charmap.KOI8R,
		21866:        charmap.KOI8U,
		Latin1:       charmap.ISO8859_1,
		28592:        charmap.ISO8859_2,
		28593:        charmap.ISO8859_3,
		28594:        charmap.ISO8859_4,
		28595:        charmap.ISO8859_5,
		28596:        charmap.ISO8859_6,
		28597:        charmap.ISO8859_7,
		28598:        charmap.ISO8859_8,
		28599:        charmap.ISO8859_9,
		28603:        charmap.ISO8859_13,
		Latin9:       charmap.ISO8859_15,
		IA5German:    ia5GermanEnc,
		IA5Swedish:   ia5SwedishEnc,
		IA5Norwegian: ia5NorwegianEnc,
	}

	asciiCompat = make(map[CodePage]struct{}, len(asciiCompatList))
	for _, cp := range asciiCompatList {
		asciiCompat[cp] = struct{}{}
	}
}

// asciiCompatList enumerates the legacy code pages the classifier may
// return for 7-bit input when the caller assumes one of them. Entries
// without a registry mapping (e.g. ibm737, the Mac national variants)
// are recognized as labels only.
var asciiCompatList = []CodePage{
	// DOS OEM
	437, 737, 775, 850, 852, 855, 857, 858, 860, 861, 862, 863, 864, 865, 866, 869,
	// Windows ANSI
	874, 1250, 1251, Windows1252, 1253, 1254, 1255, 1256, 1257, 1258,
	// Macintosh
	10000, 10004, 10005, 10006, 10007, 10010, 10017, 10021, 10029, 10079, 10081, 10082,
	// ISO 8859
	Latin1, 28592, 28593, 28594, 28595, 28596, 28597, 28598, 28599, 28603, Latin9,
	// KOI8
	20866, 21866,
	// IA5 and plain ASCII
	IA5, IA5German, IA5Swedish, IA5Norwegian, ASCII,
	// UTF-8 is ASCII-compatible by construction
	UTF8,
}

// Lookup returns the registered decoder for cp, if any.
func Lookup(cp CodePage) (encoding.Encoding, bool) {
	registryOnce.Do(initRegistry)
	enc, ok := registry[cp]
	return enc, ok
}

// IsASCIICompatible reports whether cp is on the allow-list of legacy
// code pages whose low half coincides with US-ASCII.
func IsASCIICompatible(cp CodePage) bool {
	registryOnce.Do(initRegistry)
	_, ok := asciiCompat[cp]
	return ok
}
