package codepage

import "bytes"

// SniffBOM inspects the head of buf for a Unicode byte-order mark.
// It returns the code page the BOM announces and the BOM's length in
// bytes, or (None, 0) when no BOM is present. The UTF-32 LE mark is
// checked before UTF-16 LE, whose mark is its two-byte prefix.
func SniffBOM(buf []byte) (CodePage, int) {
	switch {
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return UTF32LE, 4
	case bytes.HasPrefix(buf, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return UTF32BE, 4
	case bytes.HasPrefix(buf, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8, 3
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE}):
		return UTF16LE, 2
	case bytes.HasPrefix(buf, []byte{0xFE, 0xFF}):
		return UTF16BE, 2
	}
	return None, 0
}
