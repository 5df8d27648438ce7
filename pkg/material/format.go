package material

import (
	"strconv"
	"strings"

	"github.com/thecodec/bento/pkg/nori"
	"github.com/thecodec/bento/pkg/scene"
)

// Scalar kinds with dedicated formatting.
const (
	KindColor = "color"
	KindFloat = "float"
)

// FormatValue renders a socket default for a scalar element of the given
// kind. Colors keep three components rounded to four decimals, floats are
// rounded to four decimals, and every other kind is written unmodified.
func FormatValue(v scene.Value, kind string) string {
	switch kind {
	case KindColor:
		return nori.FormatColor(v.Components())
	case KindFloat:
		if v.Kind == scene.ValueInt {
			return strconv.FormatInt(v.Int, 10)
		}
		return nori.FormatRounded(v.Scalar(), nori.Precision)
	}
	return rawValue(v)
}

func rawValue(v scene.Value) string {
	switch v.Kind {
	case scene.ValueFloat:
		return nori.FormatFloat(v.Scalar())
	case scene.ValueVector:
		parts := make([]string, len(v.Floats))
		for i, f := range v.Floats {
			parts[i] = nori.FormatFloat(f)
		}
		return strings.Join(parts, " ")
	case scene.ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case scene.ValueBool:
		if v.Bool {
			return "True"
		}
		return "False"
	case scene.ValueString:
		return v.Str
	}
	return ""
}
