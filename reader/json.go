package reader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thomas6m/Unique-Extractor/dataset"
)

// readJSON attempts newline-delimited JSON first and falls back to a single
// document: an array of objects, or one object wrapped into a one-row
// dataset.
func readJSON(f *os.File, _ rune) (*dataset.Dataset, error) {
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading json: %v", err)
	}

	if d, ok := readNDJSON(data); ok {
		return d, nil
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing json: %v", err)
	}

	d := dataset.New(nil)
	switch v := doc.(type) {
	case []any:
		raws := splitArray(data)
		for i, elem := range v {
			obj, ok := elem.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("parsing json: array element %d is not an object", i)
			}
			var raw []byte
			if i < len(raws) {
				raw = raws[i]
			}
			appendObject(d, obj, raw)
		}
	case map[string]any:
		appendObject(d, v, data)
	default:
		return nil, fmt.Errorf("parsing json: document is neither an object nor an array of objects")
	}
	return d, nil
}

// readNDJSON parses data as one JSON object per non-empty line. Reports
// ok=false on the first line that is not an object, letting the caller
// fall back to single-document parsing.
func readNDJSON(data []byte) (*dataset.Dataset, bool) {
	d := dataset.New(nil)
	found := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			return nil, false
		}
		appendObject(d, obj, []byte(line))
		found = true
	}
	return d, found
}

// appendObject adds one decoded object as a row, extending the column list
// with unseen keys in their source order when the raw bytes are available.
func appendObject(d *dataset.Dataset, obj map[string]any, raw []byte) {
	keys := objectKeys(raw)
	if keys == nil {
		keys = make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
	}
	for _, k := range keys {
		if !d.HasColumn(k) {
			d.Columns = append(d.Columns, k)
		}
	}

	row := make(map[string]any, len(obj))
	for k, v := range obj {
		row[k] = normalizeJSONValue(v)
	}
	d.Append(row)
}

// normalizeJSONValue maps decoded JSON values onto the dataset cell types.
// Nested containers are kept as their compact JSON text.
func normalizeJSONValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case float64:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}

// objectKeys returns the top-level keys of a JSON object in source order,
// or nil when raw is not an object. encoding/json maps lose ordering, so
// the raw bytes are token-scanned once to recover it.
func objectKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	t, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := t.(json.Delim); !ok || d != '{' {
		return nil
	}
	var keys []string
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil
		}
		key, ok := kt.(string)
		if !ok {
			return nil
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil
		}
	}
	return keys
}

// skipValue consumes one JSON value, tracking delimiter depth.
func skipValue(dec *json.Decoder) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := t.(json.Delim); ok && (d == '{' || d == '[') {
		depth := 1
		for depth > 0 {
			t, err = dec.Token()
			if err != nil {
				return err
			}
			if d, ok := t.(json.Delim); ok {
				switch d {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
	}
	return nil
}

// splitArray returns the raw bytes of each element of a top-level JSON
// array, used to preserve per-object key order. Returns nil when data is
// not an array.
func splitArray(data []byte) [][]byte {
	dec := json.NewDecoder(bytes.NewReader(data))
	t, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := t.(json.Delim); !ok || d != '[' {
		return nil
	}
	var out [][]byte
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil
		}
		out = append(out, raw)
	}
	return out
}
