package codepage

import (
	"sync"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		cp   CodePage
		want string
	}{
		{UTF8, "utf-8"},
		{UTF16LE, "utf-16le"},
		{ASCII, "us-ascii"},
		{Windows1252, "windows-1252"},
		{Latin1, "iso-8859-1"},
		{Latin9, "iso-8859-15"},
		{IA5Norwegian, "ia5-norwegian"},
		{None, "none"},
		{CodePage(737), "cp737"},
	}
	for _, tt := range tests {
		if got := tt.cp.String(); got != tt.want {
			t.Errorf("CodePage(%d).String() = %q, want %q", tt.cp, got, tt.want)
		}
	}
}

func TestKindHelpers(t *testing.T) {
	if !UTF16BE.IsWide() || !UTF32LE.IsWide() {
		t.Error("UTF-16/32 must be wide")
	}
	if UTF8.IsWide() {
		t.Error("UTF-8 is not wide")
	}
	if !UTF8.IsUnicode() || Latin1.IsUnicode() {
		t.Error("IsUnicode misclassifies")
	}
	if !IA5German.IsIA5() || ASCII.IsIA5() {
		t.Error("IsIA5 misclassifies")
	}
}

func TestSniffBOM(t *testing.T) {
	tests := []struct {
		name    string
		buf     []byte
		wantCP  CodePage
		wantLen int
	}{
		{"utf-8", []byte{0xEF, 0xBB, 0xBF, 'a'}, UTF8, 3},
		{"utf-16le", []byte{0xFF, 0xFE, 'a', 0}, UTF16LE, 2},
		{"utf-16be", []byte{0xFE, 0xFF, 0, 'a'}, UTF16BE, 2},
		{"utf-32le before utf-16le", []byte{0xFF, 0xFE, 0, 0, 'a', 0, 0, 0}, UTF32LE, 4},
		{"utf-32be", []byte{0, 0, 0xFE, 0xFF, 0, 0, 0, 'a'}, UTF32BE, 4},
		{"none", []byte("plain"), None, 0},
		{"empty", nil, None, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, n := SniffBOM(tt.buf)
			if cp != tt.wantCP || n != tt.wantLen {
				t.Errorf("SniffBOM = (%v, %d), want (%v, %d)", cp, n, tt.wantCP, tt.wantLen)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		cp   CodePage
		in   []byte
		want string
	}{
		{"utf-8", UTF8, []byte("Caf\xC3\xA9"), "Café"},
		{"utf-8 invalid byte", UTF8, []byte("a\xFFb"), "a�b"},
		{"latin-1", Latin1, []byte("Caf\xE9"), "Café"},
		{"latin-9 euro", Latin9, []byte{0xA4}, "€"},
		{"windows-1252 smart quote", Windows1252, []byte{0x93}, "“"},
		{"ascii strict", ASCII, []byte("ab\xE9"), "ab�"},
		{"utf-16le", UTF16LE, []byte{'H', 0, 'i', 0}, "Hi"},
		{"utf-16be", UTF16BE, []byte{0, 'H', 0, 'i'}, "Hi"},
		{"utf-32le", UTF32LE, []byte{'A', 0, 0, 0}, "A"},
		{"ia5 german", IA5German, []byte("gr\x7D\x7Ee"), "grüße"},
		{"ia5 swedish", IA5Swedish, []byte("sm\x7Crg\x7Ds"), "smörgås"},
		{"ia5 norwegian", IA5Norwegian, []byte("bl\x7Cff"), "bløff"},
		{"named-only code page falls back", CodePage(737), []byte("abc"), "abc"},
		{"none defaults to utf-8", None, []byte("ok"), "ok"},
		{"empty", Latin1, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.cp, tt.in); got != tt.want {
				t.Errorf("Decode(%v, %q) = %q, want %q", tt.cp, tt.in, got, tt.want)
			}
		})
	}
}

func TestLookupAndAllowList(t *testing.T) {
	if _, ok := Lookup(Latin1); !ok {
		t.Error("iso-8859-1 must be decodable")
	}
	if _, ok := Lookup(CodePage(737)); ok {
		t.Error("ibm737 is a label only")
	}
	if !IsASCIICompatible(CodePage(737)) {
		t.Error("ibm737 belongs on the allow-list")
	}
	if !IsASCIICompatible(UTF8) || !IsASCIICompatible(ASCII) {
		t.Error("utf-8 and us-ascii are ASCII-compatible")
	}
	if IsASCIICompatible(UTF16LE) {
		t.Error("utf-16 is not ASCII-compatible")
	}
}

// Registry initialization is process-wide and must be idempotent under
// concurrent first use.
func TestRegistryConcurrentInit(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := Lookup(Windows1252); !ok {
				t.Error("windows-1252 must be decodable")
			}
			_ = IsASCIICompatible(Latin9)
		}()
	}
	wg.Wait()
}
