package fields

import (
	"fmt"
	"regexp"
	"strings"
)

// ParseOptions configures ReadFields.
type ParseOptions struct {
	// Separators are tried in declaration order when delimiting a
	// field. Empty means fixed-width extraction driven by MaxLength.
	Separators []string
	// Quotes are the permitted quote characters. Quoting is
	// single-character: runs are counted and the byte after a candidate
	// closing quote is inspected directly.
	Quotes []byte
	// StopAtFirstError halts the parse at the first failing line and
	// returns the records accumulated so far.
	StopAtFirstError bool
}

// ParseResult is the outcome of ReadFields. A line that violated any
// field constraint contributes no record; its index is listed in
// ErrorLines and OK is false.
type ParseResult struct {
	Records    []*Record
	OK         bool
	ErrorLines []int
}

// ReadFields parses each record line into one record per the schema
// defs. Data problems are reported through the result; the error return
// is reserved for an unusable schema (an invalid Pattern).
//
// Definitions lacking a Format are defaulted to the invariant format;
// no other definition attribute is touched.
func ReadFields(recordLines []string, defs []*Definition, opts ParseOptions) (ParseResult, error) {
	patterns := make(map[*Definition]*regexp.Regexp)
	for _, d := range defs {
		if d.Format == nil {
			d.Format = Invariant()
		}
		if d.Pattern == "" {
			continue
		}
		if _, ok := patterns[d]; ok {
			continue
		}
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return ParseResult{}, fmt.Errorf("field %q: invalid pattern: %w", d.Name, err)
		}
		patterns[d] = re
	}

	result := ParseResult{OK: true}

	for li, line := range recordLines {
		rec := &Record{}
		lineOK := true
		i := 0

		for _, d := range defs {
			field, next := extractField(line, i, d.MaxLength, opts)
			i = next

			if d.MaxLength > 0 && len(field) > d.MaxLength {
				field = field[:d.MaxLength]
			}

			if len(field) < d.MinLength {
				lineOK = false
			} else if re := patterns[d]; re != nil && !re.MatchString(field) {
				lineOK = false
			} else if v, err := coerce(d, field); err != nil {
				lineOK = false
			} else {
				rec.Set(d, v)
				continue
			}
			if opts.StopAtFirstError {
				break
			}
		}

		if lineOK {
			result.Records = append(result.Records, rec)
			continue
		}
		result.OK = false
		result.ErrorLines = append(result.ErrorLines, li)
		if opts.StopAtFirstError {
			break
		}
	}
	return result, nil
}

// extractField extracts the raw field for one definition starting at
// cursor i and returns it with the advanced cursor. Extraction tries a
// quoted span, then the separators in declaration order, then falls
// back to a fixed-width slice capped by maxLen.
func extractField(line string, i, maxLen int, opts ParseOptions) (string, int) {
	n := len(line)
	if i > n {
		i = n
	}
	budget := n - i
	if maxLen > 0 && maxLen < budget {
		budget = maxLen
	}

	var field string
	haveField := false
	endQuote := -1

	if i < n && isQuote(line[i], opts.Quotes) {
		q := line[i]
		run := 1
		for i+run < n && line[i+run] == q {
			run++
		}
		// An even run is a sequence of escaped quotes, not an opening.
		if run%2 == 1 {
			if j := findClosingQuote(line, q, i+run); j >= 0 {
				field = unescapeQuotes(line[i+1:j], q)
				haveField = true
				endQuote = j
			}
		}
	}

	sepEnd := -1
	if len(opts.Separators) > 0 {
		from := i
		if endQuote+1 > from {
			from = endQuote + 1
		}
		for _, sep := range opts.Separators {
			if sep == "" {
				continue
			}
			idx := strings.Index(line[from:], sep)
			if idx < 0 {
				continue
			}
			at := from + idx
			if !haveField {
				field = line[i:at]
				haveField = true
			}
			sepEnd = at + len(sep)
			break
		}
	}

	if !haveField {
		field = line[i : i+budget]
	}

	switch {
	case sepEnd >= 0:
		return field, sepEnd
	case endQuote >= 0:
		return field, endQuote + 1
	default:
		return field, i + len(field)
	}
}

// findClosingQuote scans for the quote ending a span opened before
// from. A candidate close is rejected when the preceding byte is a
// backslash or the following byte is another quote of the same kind
// (the two conventional escape forms; the escaped pair is stepped
// over). Returns -1 when the span never closes.
func findClosingQuote(line string, q byte, from int) int {
	for j := from; j < len(line); j++ {
		if line[j] != q {
			continue
		}
		if line[j-1] == '\\' {
			continue
		}
		if j+1 < len(line) && line[j+1] == q {
			j++
			continue
		}
		return j
	}
	return -1
}

func unescapeQuotes(s string, q byte) string {
	qs := string(q)
	s = strings.ReplaceAll(s, `\`+qs, qs)
	return strings.ReplaceAll(s, qs+qs, qs)
}

func isQuote(c byte, quotes []byte) bool {
	for _, q := range quotes {
		if c == q {
			return true
		}
	}
	return false
}
