package skos

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/cayleygraph/quad"
)

// literal returns the lexical form of a value: the text of a string literal
// regardless of its language or datatype.
func literal(v quad.Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case quad.String:
		return string(v)
	case quad.LangString:
		return string(v.Value)
	case quad.TypedString:
		return string(v.Value)
	case quad.IRI:
		return string(v)
	case quad.BNode:
		return v.String()
	case quad.Time:
		return time.Time(v).Format(time.RFC3339Nano)
	}
	if n := v.Native(); n != nil {
		return fmt.Sprint(n)
	}
	return v.String()
}

// parseDate reads a Dublin Core date. Values that are neither a time nor an
// ISO 8601 string yield the zero time.
func parseDate(v quad.Value) (time.Time, error) {
	switch v := v.(type) {
	case nil:
		return time.Time{}, nil
	case quad.Time:
		return time.Time(v), nil
	}
	s := literal(v)
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseIn(s, time.UTC)
}
