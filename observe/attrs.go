package observe

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jonwraymond/callscope/instrument"
)

// Attributes flattens metadata into OTel attributes. Nested records use
// dotted keys ("target.method"); nil values are skipped. Keys are emitted in
// sorted order.
func Attributes(md instrument.Metadata) []attribute.KeyValue {
	if len(md) == 0 {
		return nil
	}
	attrs := make([]attribute.KeyValue, 0, len(md))
	return flatten("", md, attrs)
}

func flatten(prefix string, md map[string]any, attrs []attribute.KeyValue) []attribute.KeyValue {
	for _, k := range slices.Sorted(maps.Keys(md)) {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := md[k].(type) {
		case nil:
			continue
		case map[string]any:
			attrs = flatten(key, v, attrs)
		default:
			attrs = append(attrs, toKeyValue(key, v))
		}
	}
	return attrs
}

func toKeyValue(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case int32:
		return attribute.Int64(key, int64(v))
	case uint64:
		if v <= math.MaxInt64 {
			return attribute.Int64(key, int64(v))
		}
		return attribute.String(key, fmt.Sprint(v))
	case float64:
		return attribute.Float64(key, v)
	case float32:
		return attribute.Float64(key, float64(v))
	case time.Duration:
		return attribute.Int64(key, v.Nanoseconds())
	case []string:
		return attribute.StringSlice(key, v)
	case error:
		return attribute.String(key, v.Error())
	case fmt.Stringer:
		return attribute.String(key, v.String())
	default:
		return attribute.String(key, fmt.Sprint(v))
	}
}
