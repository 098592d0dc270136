package postgrest

import (
	"fmt"
	"net/url"
	"strings"
)

// Filter is one column=op.value query parameter.
type Filter struct {
	Column string
	Op     string
	Value  string
}

// Filters keeps insertion order so request URLs are stable.
type Filters []Filter

func Eq(column string, value any) Filter  { return Filter{column, "eq", fmt.Sprint(value)} }
func Gt(column string, value any) Filter  { return Filter{column, "gt", fmt.Sprint(value)} }
func Gte(column string, value any) Filter { return Filter{column, "gte", fmt.Sprint(value)} }
func Lt(column string, value any) Filter  { return Filter{column, "lt", fmt.Sprint(value)} }

// In matches any of values.
func In[T any](column string, values []T) Filter {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return Filter{column, "in", "(" + strings.Join(parts, ",") + ")"}
}

// Order is passed through as order=<value>, e.g. "id.asc".
func Order(value string) Filter { return Filter{Column: "order", Value: value} }

// Limit caps the number of returned rows.
func Limit(n int) Filter { return Filter{Column: "limit", Value: fmt.Sprint(n)} }

// Encode renders the filters as a query string.
func (f Filters) Encode() string {
	parts := make([]string, 0, len(f))
	for _, flt := range f {
		value := encodeValue(flt.Value)
		if flt.Op != "" {
			value = flt.Op + "." + value
		}
		parts = append(parts, encodeValue(flt.Column)+"="+value)
	}
	return strings.Join(parts, "&")
}

// encodeValue escapes a query value but keeps the characters PostgREST
// uses as syntax readable.
func encodeValue(s string) string {
	escaped := url.QueryEscape(s)
	return strings.NewReplacer("%28", "(", "%29", ")", "%2C", ",", "%21", "!", "%2A", "*").Replace(escaped)
}
