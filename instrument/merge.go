package instrument

// TargetKey is the Metadata key holding target-specific fields.
const TargetKey = "target"

// CloneMetadata returns a copy of md that shares no containers with it.
// Nested Metadata and []any values are copied recursively; every other
// value (errors, pointers, structs, typed maps) is carried over as is, so
// sinks see exactly what the caller passed.
func CloneMetadata(md Metadata) Metadata {
	if md == nil {
		return nil
	}
	out := make(Metadata, len(md))
	for k, v := range md {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		return CloneMetadata(t)
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

// MergeMetadata builds the record used for every telemetry event of one
// invocation.
//
// The result is a copy of parent whose "target" field layers, later layers
// winning: parent's target fields, {"method": displayName}, identity, then
// override. Layers are merged key by key through nested Metadata, so an
// override only replaces the fields it names. parent, identity and override
// are never mutated.
func MergeMetadata(parent Metadata, displayName string, identity, override Metadata) Metadata {
	merged := CloneMetadata(parent)
	if merged == nil {
		merged = Metadata{}
	}

	target := targetFields(merged[TargetKey])
	overlay(target, Metadata{"method": displayName})
	overlay(target, identity)
	overlay(target, override)

	merged[TargetKey] = target
	return merged
}

// targetFields normalizes the parent's target field into a Metadata owned by
// the merge.
func targetFields(v any) Metadata {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return Metadata{}
		}
		return CloneMetadata(t)
	case map[string]string:
		out := make(Metadata, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	default:
		return Metadata{}
	}
}

// overlay merges src into dst, src winning. Where both hold nested Metadata
// the merge recurses; any other src value replaces dst's. dst must own its
// containers; values taken from src are cloned.
func overlay(dst, src Metadata) {
	for k, v := range src {
		if sm, ok := v.(map[string]any); ok && sm != nil {
			if dm, ok := dst[k].(map[string]any); ok && dm != nil {
				overlay(dm, sm)
				continue
			}
		}
		dst[k] = cloneValue(v)
	}
}
