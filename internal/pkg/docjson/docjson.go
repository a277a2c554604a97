// Package docjson converts MongoDB documents into JSON-safe values:
// ObjectIDs become hex strings, BSON timestamps become RFC3339 strings,
// and nested documents and arrays are converted recursively. The "_id"
// key is additionally surfaced as "id".
package docjson

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document converts a decoded BSON document into a JSON-safe map.
func Document(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		out[k] = Value(v)
	}
	if id, ok := out["_id"].(string); ok {
		out["id"] = id
	}
	return out
}

// Value converts a single BSON value. Types with no native JSON
// representation are stringified; everything else passes through.
func Value(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case bson.M:
		return Document(val)
	case map[string]any:
		return Document(val)
	case bson.D:
		m := make(map[string]any, len(val))
		for _, e := range val {
			m[e.Key] = e.Value
		}
		return Document(m)
	case bson.A:
		return encodeSlice(val)
	case []any:
		return encodeSlice(val)
	default:
		return v
	}
}

func encodeSlice(in []any) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = Value(v)
	}
	return out
}
