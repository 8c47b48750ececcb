package lines

import (
	"testing"

	"flatrec/codepage"
)

func TestLoadASCII(t *testing.T) {
	result := Load([]byte("Hi,1\n"), codepage.None, true)
	if len(result.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(result.Lines))
	}
	if result.Lines[0].Text != "Hi,1" {
		t.Errorf("text = %q, want %q", result.Lines[0].Text, "Hi,1")
	}
	if result.Encoding != codepage.ASCII {
		t.Errorf("encoding = %v, want us-ascii", result.Encoding)
	}
}

func TestLoadLatin1Fallback(t *testing.T) {
	result := Load([]byte("Caf\xE9\n"), codepage.None, true)
	if len(result.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(result.Lines))
	}
	if result.Lines[0].Text != "Café" {
		t.Errorf("text = %q, want %q", result.Lines[0].Text, "Café")
	}
	if result.Lines[0].Encoding != codepage.Latin1 {
		t.Errorf("line encoding = %v, want iso-8859-1", result.Lines[0].Encoding)
	}
}

// A buffer mixing ASCII, ISO-8859-1 and UTF-8 lines stabilizes on the
// starting default that decodes the most lines with one code page.
func TestLoadMixedEncodingsStabilizes(t *testing.T) {
	buf := []byte("plain ascii\nCaf\xE9\n\xC3\xA9\n")

	result := Load(buf, codepage.None, true)
	if result.Encoding != codepage.Latin1 {
		t.Fatalf("encoding = %v, want iso-8859-1", result.Encoding)
	}
	wantText := []string{"plain ascii", "Café", "Ã©"}
	if len(result.Lines) != len(wantText) {
		t.Fatalf("got %d lines, want %d", len(result.Lines), len(wantText))
	}
	for i, want := range wantText {
		if result.Lines[i].Text != want {
			t.Errorf("line %d = %q, want %q", i, result.Lines[i].Text, want)
		}
		if result.Lines[i].Encoding != codepage.Latin1 {
			t.Errorf("line %d encoding = %v, want iso-8859-1", i, result.Lines[i].Encoding)
		}
	}
}

// Without retry, the first pass's oscillation is visible: the first
// line keeps the code page it was decoded with before the default
// stabilized.
func TestLoadNoRetryKeepsFirstPass(t *testing.T) {
	buf := []byte("plain ascii\nCaf\xE9\n\xC3\xA9\n")

	result := Load(buf, codepage.None, false)
	if result.Encoding != codepage.Latin1 {
		t.Errorf("encoding = %v, want iso-8859-1", result.Encoding)
	}
	if result.Lines[0].Encoding != codepage.ASCII {
		t.Errorf("line 0 encoding = %v, want us-ascii", result.Lines[0].Encoding)
	}
}

// Re-loading with the previously detected encoding and no retry is a
// fixed point.
func TestLoadIdempotent(t *testing.T) {
	buf := []byte("plain ascii\nCaf\xE9\n\xC3\xA9\n")

	first := Load(buf, codepage.None, true)
	second := Load(buf, first.Encoding, false)

	if second.Encoding != first.Encoding {
		t.Fatalf("encoding changed: %v -> %v", first.Encoding, second.Encoding)
	}
	if len(second.Lines) != len(first.Lines) {
		t.Fatalf("line count changed: %d -> %d", len(first.Lines), len(second.Lines))
	}
	for i := range first.Lines {
		if first.Lines[i] != second.Lines[i] {
			t.Errorf("line %d changed: %+v -> %+v", i, first.Lines[i], second.Lines[i])
		}
	}
}

func TestLoadBOM(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		wantText string
		wantCP   codepage.CodePage
	}{
		{
			name:     "utf-8 bom stripped",
			buf:      []byte("\xEF\xBB\xBFCaf\xC3\xA9\n"),
			wantText: "Café",
			wantCP:   codepage.UTF8,
		},
		{
			name:     "utf-16le bom",
			buf:      []byte{0xFF, 0xFE, 'H', 0, 'i', 0},
			wantText: "Hi",
			wantCP:   codepage.UTF16LE,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Load(tt.buf, codepage.None, true)
			if len(result.Lines) != 1 {
				t.Fatalf("got %d lines, want 1", len(result.Lines))
			}
			if result.Lines[0].Text != tt.wantText {
				t.Errorf("text = %q, want %q", result.Lines[0].Text, tt.wantText)
			}
			if result.Encoding != tt.wantCP {
				t.Errorf("encoding = %v, want %v", result.Encoding, tt.wantCP)
			}
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	result := Load(nil, codepage.None, true)
	if len(result.Lines) != 0 {
		t.Errorf("got %d lines, want 0", len(result.Lines))
	}
	if result.Encoding != codepage.UTF8 {
		t.Errorf("encoding = %v, want utf-8", result.Encoding)
	}
}

func TestLoadExplicitDefault(t *testing.T) {
	result := Load([]byte("Caf\xE9\n"), codepage.Windows1252, true)
	if result.Lines[0].Text != "Café" {
		t.Errorf("text = %q, want %q", result.Lines[0].Text, "Café")
	}
	if result.Encoding != codepage.Windows1252 {
		t.Errorf("encoding = %v, want windows-1252", result.Encoding)
	}
}

// A literal question mark is treated as a lossy marker and triggers a
// re-check, which confirms the current default and changes nothing.
func TestLoadQuestionMarkRecheck(t *testing.T) {
	result := Load([]byte("what?\n"), codepage.ASCII, true)
	if result.Lines[0].Text != "what?" {
		t.Errorf("text = %q, want %q", result.Lines[0].Text, "what?")
	}
	if result.Encoding != codepage.ASCII {
		t.Errorf("encoding = %v, want us-ascii", result.Encoding)
	}
}
