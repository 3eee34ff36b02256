package recipe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ColumnID identifies a recipe column (a property slot of a step)
type ColumnID string

// Well-known columns read by the analysis engine
const (
	ColumnAction       ColumnID = "action"
	ColumnTask         ColumnID = "task"
	ColumnStepDuration ColumnID = "step_duration"
	ColumnComment      ColumnID = "comment"
)

// PropertyType is the declared type of a column
type PropertyType int

const (
	// PropertyText holds free text
	PropertyText PropertyType = iota
	// PropertyInt16 holds a 16-bit signed integer (action ids)
	PropertyInt16
	// PropertyFloat holds a float (iteration counts, seconds)
	PropertyFloat
)

// String returns the schema name of the type
func (t PropertyType) String() string {
	switch t {
	case PropertyText:
		return "text"
	case PropertyInt16:
		return "int16"
	case PropertyFloat:
		return "float"
	default:
		return "unknown"
	}
}

// ParsePropertyType parses a schema type name
func ParsePropertyType(s string) (PropertyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "string":
		return PropertyText, nil
	case "int16", "int":
		return PropertyInt16, nil
	case "float", "double":
		return PropertyFloat, nil
	default:
		return PropertyText, fmt.Errorf("unknown property type %q: must be text, int16, or float", s)
	}
}

// Property is one typed cell of a step. It keeps the raw text as edited so a
// half-typed value survives round trips; typed accessors parse on demand.
type Property struct {
	typ PropertyType
	raw string
}

// NewProperty creates a property from raw cell text
func NewProperty(typ PropertyType, raw string) Property {
	return Property{typ: typ, raw: raw}
}

// Int16Property creates an integer property
func Int16Property(v int16) Property {
	return Property{typ: PropertyInt16, raw: strconv.FormatInt(int64(v), 10)}
}

// FloatProperty creates a float property
func FloatProperty(v float64) Property {
	return Property{typ: PropertyFloat, raw: strconv.FormatFloat(v, 'g', -1, 64)}
}

// TextProperty creates a text property
func TextProperty(s string) Property {
	return Property{typ: PropertyText, raw: s}
}

// Type returns the declared type
func (p Property) Type() PropertyType {
	return p.typ
}

// Raw returns the cell text
func (p Property) Raw() string {
	return p.raw
}

// Int16 parses the value as a 16-bit integer. Integral float text ("20.0") is accepted.
func (p Property) Int16() (int16, error) {
	s := normalizeNumber(p.raw)
	if v, err := strconv.ParseInt(s, 10, 16); err == nil {
		return int16(v), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt16 || f > math.MaxInt16 {
		return 0, fmt.Errorf("value %q is not a 16-bit integer", p.raw)
	}
	return int16(f), nil
}

// Float parses the value as a float64. A decimal comma is accepted.
func (p Property) Float() (float64, error) {
	f, err := strconv.ParseFloat(normalizeNumber(p.raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %q is not a number", p.raw)
	}
	return f, nil
}

// String returns the cell text
func (p Property) String() string {
	return p.raw
}

func normalizeNumber(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}
