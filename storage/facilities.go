package storage

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// ParseFacilities decodes a stored facility list. Both a JSON array
// ("[1, 2]") and a delimited list ("1|2" or "1,2") are accepted. Codes are
// returned in order, duplicates included.
func ParseFacilities(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if strings.HasPrefix(raw, "[") {
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		var items []any
		if err := dec.Decode(&items); err != nil {
			return nil, eris.Wrapf(err, "facilities: decode %q", raw)
		}
		codes := make([]string, 0, len(items))
		for _, it := range items {
			switch v := it.(type) {
			case json.Number:
				codes = append(codes, v.String())
			case string:
				codes = append(codes, v)
			case nil:
				codes = append(codes, "")
			default:
				codes = append(codes, fmt.Sprint(v))
			}
		}
		return codes, nil
	}

	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}
	parts := strings.Split(raw, sep)
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		codes = append(codes, strings.TrimSpace(p))
	}
	return codes, nil
}

// FormatFacilities encodes facility codes as a JSON array for storage.
func FormatFacilities(codes []string) string {
	if len(codes) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(codes)
	return string(b)
}
