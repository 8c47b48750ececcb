// Package linefilter selects the record-bearing lines of a decoded
// file by structural rules: an index window optionally narrowed by
// sentinel lines, and per-line predicates on shape.
package linefilter

import "strings"

// Options configures Apply. Start from DefaultOptions: the zero value
// reads ExactLength 0 and the index fields 0 as real requirements, not
// as unset.
type Options struct {
	// StartSentinel is an exact line bracketing the window from above:
	// output starts after it. Empty disables.
	StartSentinel string
	// EndSentinel is an exact line bracketing the window from below:
	// output stops before it. Empty disables.
	EndSentinel string
	// SkipEmpty drops empty and whitespace-only lines.
	SkipEmpty bool
	// Prefix, Substring and Suffix must each occur in every selected
	// line when non-empty.
	Prefix    string
	Substring string
	Suffix    string
	// ExactLength requires every selected line to have exactly this
	// many characters. Negative disables.
	ExactLength int
	// FirstIndex and LastIndex bound the window (0-based, inclusive).
	// Negative means unbounded.
	FirstIndex int
	LastIndex  int
	// StopAtError terminates the scan at the first structural failure,
	// counting the rest of the window as skipped.
	StopAtError bool
}

// DefaultOptions returns the neutral predicate set: skip empty lines,
// no sentinels, unbounded window.
func DefaultOptions() Options {
	return Options{
		SkipEmpty:   true,
		ExactLength: -1,
		FirstIndex:  -1,
		LastIndex:   -1,
	}
}

// Result is the outcome of Apply. OK is false when the start sentinel
// was missing, the window was empty, or any line failed a structural
// predicate. Skipped counts lines inside the window that were not
// emitted (structural failures and skipped empties).
type Result struct {
	Lines   []string
	OK      bool
	Skipped int
}

// Apply filters lines by opts. The output is a subsequence of the
// resolved window, in input order.
func Apply(lines []string, opts Options) Result {
	start := 0
	if opts.FirstIndex >= 0 {
		start = opts.FirstIndex
	}

	if opts.StartSentinel != "" {
		// The sentinel itself may sit one line before the window.
		from := start - 1
		if from < 0 {
			from = 0
		}
		found := -1
		for i := from; i < len(lines); i++ {
			if lines[i] == opts.StartSentinel {
				found = i
				break
			}
		}
		if found < 0 {
			return Result{OK: false}
		}
		if found >= start {
			start = found + 1
		}
	}

	end := len(lines) - 1
	if opts.LastIndex >= 0 && opts.LastIndex < end {
		end = opts.LastIndex
	}

	if opts.EndSentinel != "" {
		for i := start; i < len(lines); i++ {
			if lines[i] == opts.EndSentinel {
				if i <= end {
					end = i - 1
				}
				break
			}
		}
	}

	if end < start {
		return Result{OK: false}
	}

	out := make([]string, 0, end-start+1)
	ok := true
	skipped := 0

	for i := start; i <= end; i++ {
		line := lines[i]
		if failsStructure(line, opts) {
			ok = false
			if opts.StopAtError {
				skipped += end - i + 1
				break
			}
			skipped++
			continue
		}
		if opts.SkipEmpty && strings.TrimSpace(line) == "" {
			skipped++
			continue
		}
		out = append(out, line)
	}

	return Result{Lines: out, OK: ok, Skipped: skipped}
}

func failsStructure(line string, opts Options) bool {
	if opts.ExactLength >= 0 && len(line) != opts.ExactLength {
		return true
	}
	if opts.Prefix != "" && !strings.HasPrefix(line, opts.Prefix) {
		return true
	}
	if opts.Substring != "" && !strings.Contains(line, opts.Substring) {
		return true
	}
	if opts.Suffix != "" && !strings.HasSuffix(line, opts.Suffix) {
		return true
	}
	return false
}
