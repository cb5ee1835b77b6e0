// Package store implements the persistence engine for the single Flax state
// document: a hard-coded base schema, a recursive default-filling merge that
// upgrades documents written by older schema versions on every load, a
// pluggable persistence Port (file, PostgreSQL, S3), and a Manager that
// serializes every load-mutate-save cycle.
package store

// BaseDocument returns the base schema of the state document. Every load
// merges the raw stored document with this base, so adding a key here is the
// only migration step a new field ever needs.
func BaseDocument() map[string]any {
	return map[string]any{
		"users":            []any{},
		"classes":          []any{},
		"messages":         []any{},
		"loginPodiumOrder": []any{},
		"settings": map[string]any{
			"adminPasswordHash": "",
		},
	}
}

// Merge reconciles a decoded document with the base schema:
//
//   - where the base holds an array, the value is kept verbatim if it is an
//     array, otherwise replaced by the base's (empty) array;
//   - where the base holds an object, the merge recurses key by key, and keys
//     present in the value but unknown to the base are preserved;
//   - otherwise the value is kept if it was present, else the base scalar is
//     used.
//
// Merge is idempotent: Merge(Merge(v, base), base) equals Merge(v, base).
func Merge(value, base any) any {
	switch b := base.(type) {
	case []any:
		if v, ok := value.([]any); ok {
			return v
		}
		out := make([]any, len(b))
		copy(out, b)
		return out

	case map[string]any:
		src, _ := value.(map[string]any)
		result := make(map[string]any, len(src)+len(b))
		for k, v := range src {
			result[k] = v
		}
		for k, bv := range b {
			sv, present := src[k]
			switch bv.(type) {
			case []any, map[string]any:
				result[k] = Merge(sv, bv)
			default:
				if present {
					result[k] = sv
				} else {
					result[k] = bv
				}
			}
		}
		return result

	default:
		if value == nil {
			return base
		}
		return value
	}
}
