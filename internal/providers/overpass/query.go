package overpass

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter selects nodes by a single tag. An empty Value matches any value;
// Regex switches the value match from equality to a regular expression.
type Filter struct {
	Key   string
	Value string
	Regex bool
}

func (f Filter) selector() string {
	switch {
	case f.Value == "":
		return fmt.Sprintf(`["%s"]`, f.Key)
	case f.Regex:
		return fmt.Sprintf(`["%s"~"%s"]`, f.Key, f.Value)
	default:
		return fmt.Sprintf(`["%s"="%s"]`, f.Key, f.Value)
	}
}

// Query is a union of tag filters around a point, rendered as Overpass QL.
type Query struct {
	Filters        []Filter
	Latitude       float64
	Longitude      float64
	RadiusMeters   int
	TimeoutSeconds int
	Limit          int
}

// String renders the query, e.g.
//
//	[out:json][timeout:25];
//	(
//	  node["historic"](around:3000,26.4499,80.3319);
//	);
//	out 25;
func (q Query) String() string {
	var b strings.Builder

	b.WriteString("[out:json]")
	if q.TimeoutSeconds > 0 {
		fmt.Fprintf(&b, "[timeout:%d]", q.TimeoutSeconds)
	}
	b.WriteString(";\n(\n")

	around := fmt.Sprintf("(around:%d,%s,%s)",
		q.RadiusMeters,
		strconv.FormatFloat(q.Latitude, 'f', -1, 64),
		strconv.FormatFloat(q.Longitude, 'f', -1, 64),
	)
	for _, f := range q.Filters {
		fmt.Fprintf(&b, "  node%s%s;\n", f.selector(), around)
	}

	b.WriteString(");\n")
	if q.Limit > 0 {
		fmt.Fprintf(&b, "out %d;", q.Limit)
	} else {
		b.WriteString("out;")
	}

	return b.String()
}
