package notification

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotArray reports a payload whose recognized container holds something
// other than an array.
var ErrNotArray = errors.New("notification container is not an array")

// extractor pulls the entry container out of a decoded payload. ok reports
// whether the strategy claimed the payload.
type extractor func(v any) (container any, ok bool)

// extractors are tried in order; the first one that claims the payload wins.
var extractors = []extractor{
	bareArray,
	field("data"),
	field("rows"),
	field("notifications"),
}

func bareArray(v any) (any, bool) {
	_, ok := v.([]any)
	return v, ok
}

func field(name string) extractor {
	return func(v any) (any, bool) {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		inner, present := obj[name]
		if !present || !truthy(inner) {
			return nil, false
		}
		return inner, true
	}
}

// entries runs the extractors. An unclaimed payload has no entries; a claimed
// container that is not an array is ErrNotArray.
func entries(v any) ([]any, error) {
	for _, extract := range extractors {
		container, ok := extract(v)
		if !ok {
			continue
		}
		arr, isArray := container.([]any)
		if !isArray {
			return nil, fmt.Errorf("%w: %T", ErrNotArray, container)
		}
		return arr, nil
	}
	return nil, nil
}

// Normalize decodes raw JSON and maps it to canonical records. It fails when
// the bytes are not JSON or the claimed container is not an array; malformed
// entries degrade to defaults.
func Normalize(data []byte) ([]Notification, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	arr, err := entries(v)
	if err != nil {
		return nil, err
	}
	return mapEntries(arr), nil
}

// NormalizeValue maps an already decoded payload to canonical records. A
// container that is not an array yields an empty list.
func NormalizeValue(v any) []Notification {
	arr, _ := entries(v)
	return mapEntries(arr)
}

func mapEntries(entries []any) []Notification {
	out := make([]Notification, 0, len(entries))
	for _, e := range entries {
		if !truthy(e) {
			continue
		}
		obj, _ := e.(map[string]any)
		idx := len(out)
		n := Notification{
			ID:      strconv.Itoa(idx),
			Title:   DefaultTitle,
			Message: "",
			Read:    truthy(obj["read"]),
		}
		if id, ok := first(obj, "id"); ok {
			n.ID = stringify(id)
		}
		if title, ok := first(obj, "title", "heading"); ok {
			n.Title = stringify(title)
		}
		if msg, ok := first(obj, "message", "body"); ok {
			n.Message = stringify(msg)
		}
		if ts, ok := first(obj, "timestamp", "time", "created_at"); ok {
			s := stringify(ts)
			n.Timestamp = &s
		}
		out = append(out, n)
	}
	return out
}

// first returns the value of the first key that is present and not null.
func first(obj map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
