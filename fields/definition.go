// Package fields extracts typed fields from record lines according to
// a caller-supplied schema of field definitions.
package fields

import "time"

// Kind is a declared field type. The set is closed.
type Kind int

const (
	Text Kind = iota
	Integer
	Decimal
	DateTime
	Boolean
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case DateTime:
		return "datetime"
	case Boolean:
		return "boolean"
	}
	return "unknown"
}

// KindFromString resolves a kind name as produced by Kind.String.
func KindFromString(s string) (Kind, bool) {
	switch s {
	case "text":
		return Text, true
	case "integer", "int":
		return Integer, true
	case "decimal":
		return Decimal, true
	case "datetime", "date":
		return DateTime, true
	case "boolean", "bool":
		return Boolean, true
	}
	return Text, false
}

// Format is the format/locale hint used when coercing a raw field to
// its declared type.
type Format struct {
	// DecimalSeparator marks the fraction in Decimal fields.
	DecimalSeparator byte
	// GroupSeparator is stripped from Decimal fields before parsing.
	// Zero means no grouping.
	GroupSeparator byte
	// TimeLayouts are tried in order for DateTime fields.
	TimeLayouts []string
	// Location resolves zone-less timestamps. Nil means local time.
	Location *time.Location
}

// invariantLayouts are the culture-neutral timestamp shapes accepted by
// the default format. None of them defaults missing date components
// from the current date: an absent date parses as year 0, January 1.
var invariantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"15:04:05",
}

// Invariant returns the locale-invariant format hint: '.' decimal
// separator, no grouping, the invariant timestamp layouts, local time.
func Invariant() *Format {
	return &Format{
		DecimalSeparator: '.',
		TimeLayouts:      invariantLayouts,
	}
}

// Definition describes one field of a record schema. Definitions are
// value carriers constructed once and read many times; the parser may
// fill in a nil Format with Invariant but changes nothing else.
//
// Records key fields by definition pointer, not by name: two distinct
// definitions sharing a name do not collide, and name uniqueness is the
// caller's concern.
type Definition struct {
	Name string
	Kind Kind
	// Format is the coercion hint; nil is lazily defaulted to Invariant.
	Format *Format
	// Pattern is an optional regular expression the raw field must
	// match (anywhere in the field, IsMatch semantics).
	Pattern string
	// MinLength is the minimum raw field length.
	MinLength int
	// MaxLength caps the raw field length; longer extractions are
	// truncated. Zero means unlimited. Setting it on every definition
	// while supplying no separators yields fixed-width parsing.
	MaxLength int
}
