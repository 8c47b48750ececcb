package lines

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"flatrec/codepage"
	"flatrec/detect"
	"flatrec/internal/logging"
)

// Line is one decoded text line together with the code page that was
// actually used to decode it.
type Line struct {
	Text     string
	Encoding codepage.CodePage
}

// Result is the outcome of Load: the decoded lines in input order and
// the dominant code page of the selected pass.
type Result struct {
	Lines    []Line
	Encoding codepage.CodePage
}

// Loader decodes byte buffers into text lines. Construct it with
// NewLoader.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a Loader. logger may be nil.
func NewLoader(logger *slog.Logger) *Loader {
	logger = logging.Default(logger)
	return &Loader{logger: logger.With("component", "lines")}
}

// Load decodes buf with the starting default def, or with no default
// when def is codepage.None. See Loader.Load.
func Load(buf []byte, def codepage.CodePage, retryOnConflict bool) Result {
	return NewLoader(nil).Load(buf, def, retryOnConflict)
}

// Load splits buf into byte-lines and decodes each one, re-classifying
// lines that decode lossily and promoting a newly detected code page to
// the running default once it is at least as frequent as the current
// leader. When a pass ends with more than one code page in its
// histogram and retryOnConflict is set, the whole buffer is re-decoded
// once per code page observed, and the pass whose dominant code page
// covers the most lines wins. The retry loop terminates because each
// pass is keyed by its starting default and a default is attempted at
// most once.
func (l *Loader) Load(buf []byte, def codepage.CodePage, retryOnConflict bool) Result {
	byteLines := Split(buf)

	initial := def
	if initial == codepage.None {
		head := buf
		if len(head) > 10 {
			head = head[:10]
		}
		if cp, n := codepage.SniffBOM(head); cp != codepage.None {
			initial = cp
			// The mark is metadata, not part of the first line.
			if len(byteLines) > 0 && len(byteLines[0]) >= n {
				byteLines[0] = byteLines[0][n:]
			}
		}
	}

	type pass struct {
		lines    []Line
		dominant codepage.CodePage
		domCount int
	}

	var attempted []codepage.CodePage
	results := make(map[codepage.CodePage]pass)
	queued := map[codepage.CodePage]bool{initial: true}
	queue := []codepage.CodePage{initial}

	for len(queue) > 0 {
		start := queue[0]
		queue = queue[1:]

		decoded, hist, order, dominant := l.decodePass(byteLines, start)
		results[start] = pass{
			lines:    decoded,
			dominant: dominant,
			domCount: hist[dominant],
		}
		attempted = append(attempted, start)

		if retryOnConflict && len(hist) > 1 {
			for _, cp := range order {
				if !queued[cp] {
					queued[cp] = true
					queue = append(queue, cp)
					l.logger.Debug("mixed encodings in pass, retrying",
						"start", start.String(), "retry", cp.String())
				}
			}
		}
	}

	best := attempted[0]
	for _, s := range attempted[1:] {
		if results[s].domCount > results[best].domCount {
			best = s
		}
	}
	r := results[best]

	final := r.dominant
	if final == codepage.None {
		final = initial
		if final == codepage.None {
			final = codepage.UTF8
		}
	}
	l.logger.Debug("load complete",
		"passes", len(attempted), "encoding", final.String(), "lines", len(r.lines))
	return Result{Lines: r.lines, Encoding: final}
}

// decodePass decodes every byte-line once with start as the running
// default. It returns the lines, the per-code-page histogram, the
// distinct code pages in first-appearance order, and the dominant code
// page (ties resolved by whichever reached the count first).
func (l *Loader) decodePass(byteLines [][]byte, start codepage.CodePage) ([]Line, map[codepage.CodePage]int, []codepage.CodePage, codepage.CodePage) {
	cur := start
	hasDefault := cur != codepage.None

	hist := make(map[codepage.CodePage]int)
	var order []codepage.CodePage
	dominant := codepage.None
	decoded := make([]Line, 0, len(byteLines))

	for _, bl := range byteLines {
		eff := cur
		if eff == codepage.None {
			eff = codepage.UTF8
		}
		text := codepage.Decode(eff, bl)
		used := eff

		if !hasDefault || lossy(text) {
			verdict, det := detect.Classify(bl, cur)
			if det != codepage.None && det != eff &&
				(verdict == detect.Confirmed || verdict == detect.Inconclusive) {
				text = codepage.Decode(det, bl)
				used = det
			}
		}

		if hist[used] == 0 {
			order = append(order, used)
		}
		hist[used]++
		if dominant == codepage.None || hist[used] > hist[dominant] {
			dominant = used
		}

		if used != eff && (!hasDefault || hist[used] >= hist[dominant]) {
			cur = used
			hasDefault = true
		}

		decoded = append(decoded, Line{Text: text, Encoding: used})
	}
	return decoded, hist, order, dominant
}

// lossy reports whether a decoded line carries a lossy-decode marker:
// U+FFFD from the decoders here, or '?', the substitution character of
// the legacy decoders this pipeline is compatible with.
func lossy(text string) bool {
	return strings.ContainsRune(text, utf8.RuneError) || strings.ContainsRune(text, '?')
}
