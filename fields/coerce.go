package fields

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// coerce converts a raw field to the definition's declared type using
// its format hint. The hint has been defaulted by ReadFields.
func coerce(d *Definition, field string) (any, error) {
	switch d.Kind {
	case Text:
		return field, nil
	case Integer:
		return parseInt(field)
	case Decimal:
		return parseDecimal(field, d.Format)
	case DateTime:
		return parseTime(field, d.Format)
	case Boolean:
		return parseBool(field)
	}
	return nil, fmt.Errorf("unsupported kind %d", d.Kind)
}

func parseInt(field string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not an integer: %q", field)
	}
	return n, nil
}

func parseDecimal(field string, f *Format) (decimal.Decimal, error) {
	s := strings.TrimSpace(field)
	if f.GroupSeparator != 0 {
		s = strings.ReplaceAll(s, string(f.GroupSeparator), "")
	}
	if f.DecimalSeparator != 0 && f.DecimalSeparator != '.' {
		s = strings.ReplaceAll(s, string(f.DecimalSeparator), ".")
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("not a decimal: %q", field)
	}
	return v, nil
}

// parseTime accepts surrounding whitespace and assumes local time for
// zone-less layouts. Missing date components are not defaulted from the
// current date.
func parseTime(field string, f *Format) (time.Time, error) {
	s := strings.TrimSpace(field)
	layouts := f.TimeLayouts
	if len(layouts) == 0 {
		layouts = invariantLayouts
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a timestamp: %q", field)
}

// parseBool accepts boolean literals first; a non-boolean field that
// parses as an integer maps zero to false and anything else to true.
func parseBool(field string) (bool, error) {
	s := strings.TrimSpace(field)
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false, fmt.Errorf("not a boolean: %q", field)
	}
	return n != 0, nil
}
