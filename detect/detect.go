// Package detect infers the character encoding of a byte buffer.
//
// Classification is a staged rule pipeline: a UTF-32 quad check, a
// UTF-16 pair check, then a single-pass byte scan that weighs UTF-8
// validity, 7-bit purity and high-byte evidence for the Latin family.
// The outcome is a tri-state verdict against the caller's optional
// assumption; the three states are distinct on purpose. Confirmed and
// inconclusive both carry a best-guess code page, and the decoder's
// stabilization loop relies on inconclusive meaning "found something,
// but the assumption cannot be ruled out".
package detect

import (
	"flatrec/codepage"
)

// Verdict is the outcome of a classification against an assumption.
type Verdict int

const (
	// Confirmed: detection matches the assumption, or no assumption was
	// given and the evidence is sufficient.
	Confirmed Verdict = iota
	// Inconclusive: detection found something but the assumption cannot
	// be ruled out, or vice versa.
	Inconclusive
	// Rejected: detection is incompatible with the assumption, or
	// nothing fits.
	Rejected
)

func (v Verdict) String() string {
	switch v {
	case Confirmed:
		return "confirmed"
	case Inconclusive:
		return "inconclusive"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// Classify examines b and returns a verdict together with a best-guess
// code page. assumed may be codepage.None when the caller has no prior
// hint. On Rejected the returned code page may be codepage.None.
func Classify(b []byte, assumed codepage.CodePage) (Verdict, codepage.CodePage) {
	if len(b) == 0 {
		// No evidence against anything.
		if assumed != codepage.None {
			return Confirmed, assumed
		}
		return Confirmed, codepage.ASCII
	}

	detected := codepage.None

	// Stage A: UTF-32, only meaningful on whole quads.
	if len(b)%4 == 0 {
		le, be := countUTF32(b)
		switch {
		case le > 0 && be == 0:
			detected = codepage.UTF32LE
		case be > 0 && le == 0:
			detected = codepage.UTF32BE
		}
	}

	// Stage B: UTF-16, on whole pairs. Runs when stage A did not decide,
	// or when the caller explicitly assumes UTF-16 (the pair evidence may
	// then overrule a spurious quad match).
	if len(b)%2 == 0 && (detected == codepage.None || assumed == codepage.UTF16LE || assumed == codepage.UTF16BE) {
		le, be := countUTF16(b)
		switch {
		case le > 0 && be == 0:
			detected = codepage.UTF16LE
		case be > 0 && le == 0:
			detected = codepage.UTF16BE
		}
	}

	if detected.IsWide() && (assumed == codepage.None || assumed == detected) {
		return Confirmed, detected
	}

	// The byte scan runs when the wide stages decided nothing, or when
	// the assumption is a single-byte or UTF-8 encoding that could still
	// explain the buffer better than the wide guess.
	if detected.IsWide() && assumed.IsWide() {
		// Two different wide encodings; no recoding between them.
		return Rejected, detected
	}

	verdict, scanned := decide(scan(b), assumed)

	if detected.IsWide() {
		// Only a positive identification overturns the wide guess; the
		// classifier does not recode between multi-byte families on
		// weaker evidence.
		if verdict == Confirmed && scanned != codepage.None {
			return verdict, scanned
		}
		return Rejected, detected
	}
	return verdict, scanned
}

// countUTF32 counts quads matching the Western-Latin UTF-32 patterns
// (nz,0,0,0) and (0,0,0,nz).
func countUTF32(b []byte) (le, be int) {
	for i := 0; i+3 < len(b); i += 4 {
		switch {
		case b[i] != 0 && b[i+1] == 0 && b[i+2] == 0 && b[i+3] == 0:
			le++
		case b[i] == 0 && b[i+1] == 0 && b[i+2] == 0 && b[i+3] != 0:
			be++
		}
	}
	return le, be
}

// countUTF16 counts pairs matching (nz,0) and (0,nz).
func countUTF16(b []byte) (le, be int) {
	for i := 0; i+1 < len(b); i += 2 {
		switch {
		case b[i] != 0 && b[i+1] == 0:
			le++
		case b[i] == 0 && b[i+1] != 0:
			be++
		}
	}
	return le, be
}

// decide applies the byte-scan decision rules in order.
func decide(s stats, assumed codepage.CodePage) (Verdict, codepage.CodePage) {
	asciiOK := s.asciiRule()

	// Rule 1: the buffer contains at least one cleanly consumed multi-byte
	// UTF-8 sequence and no invalid one.
	if s.isUTF8() {
		if assumed == codepage.None || assumed == codepage.UTF8 {
			return Confirmed, codepage.UTF8
		}
		return Inconclusive, codepage.UTF8
	}

	// Rule 2: pure 7-bit input.
	if s.is7Bit {
		if assumed.IsIA5() && s.ia5Potential(assumed) > 0 {
			if asciiOK {
				return Confirmed, assumed
			}
			return Inconclusive, assumed
		}
		if assumed == codepage.None && (abs(s.brackets) > 2 || abs(s.braces) > 2) {
			if cp := s.inferIA5(); cp != codepage.None {
				if asciiOK {
					return Confirmed, cp
				}
				return Inconclusive, cp
			}
		}
		if assumed != codepage.None && codepage.IsASCIICompatible(assumed) {
			if asciiOK {
				return Confirmed, assumed
			}
			return Inconclusive, assumed
		}
		if asciiOK && assumed == codepage.None {
			return Confirmed, codepage.ASCII
		}
		return Inconclusive, codepage.ASCII
	}

	// Rule 3: high bytes present, plausibly the Latin-1 family.
	if s.latin1 > 0 && asciiOK {
		switch {
		case s.win1252 == 0 && s.latin9 == 0:
			// Nothing distinguishes 1252, 8859-1 and 8859-15 here; prefer
			// the caller's pick when it is one of them.
			switch assumed {
			case codepage.Windows1252, codepage.Latin1, codepage.Latin9:
				return Confirmed, assumed
			case codepage.None:
				return Confirmed, codepage.Latin1
			}
			return Inconclusive, codepage.Latin1
		case s.latin9 > 0 && s.win1252 == 0:
			switch assumed {
			case codepage.Windows1252, codepage.Latin9:
				return Confirmed, assumed
			case codepage.None:
				return Confirmed, codepage.Latin9
			}
			return Inconclusive, codepage.Latin9
		case s.win1252 > 0:
			switch assumed {
			case codepage.Windows1252:
				return Confirmed, assumed
			case codepage.None:
				return Confirmed, codepage.Windows1252
			}
			return Inconclusive, codepage.Windows1252
		}
	}

	// Rule 4: nothing fits.
	return Rejected, codepage.None
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
