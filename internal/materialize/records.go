package materialize

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// record is a single CSV row source: an object's keys in the order they
// appeared in the JSON text, plus the decoded values.
type record struct {
	keys   []string
	values map[string]any
}

// parseRecords coerces a JSON body into a list of object records. A top-level
// object becomes a one-element list; a top-level array must contain only
// objects. Go maps do not preserve key order, so records are read token by
// token off the raw text instead of through json.Unmarshal.
func parseRecords(raw []byte) ([]record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("cannot export %v to CSV: not an object or list of objects", tok)
	}

	switch delim {
	case '{':
		rec, err := parseObject(dec)
		if err != nil {
			return nil, err
		}
		return []record{rec}, nil
	case '[':
		var records []record
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("decoding response body: %w", err)
			}
			if d, ok := tok.(json.Delim); !ok || d != '{' {
				return nil, fmt.Errorf("cannot export to CSV: list element %d is not an object", len(records))
			}
			rec, err := parseObject(dec)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
		return records, nil
	}
	return nil, fmt.Errorf("cannot export to CSV: unexpected token %v", delim)
}

// parseObject reads one object's members; the opening '{' must already have
// been consumed.
func parseObject(dec *json.Decoder) (record, error) {
	rec := record{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return rec, fmt.Errorf("decoding object key: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return rec, fmt.Errorf("decoding object key: unexpected token %v", tok)
		}

		var val any
		if err := dec.Decode(&val); err != nil {
			return rec, fmt.Errorf("decoding value for %q: %w", key, err)
		}

		if _, seen := rec.values[key]; !seen {
			rec.keys = append(rec.keys, key)
		}
		rec.values[key] = val
	}
	// Consume the closing '}'
	if _, err := dec.Token(); err != nil {
		return rec, fmt.Errorf("decoding object end: %w", err)
	}
	return rec, nil
}
