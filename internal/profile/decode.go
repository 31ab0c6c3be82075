package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column aliases accepted by FromRecord in addition to the field names.
var columnAliases = map[string]string{
	"bp_sys":    FieldSystolic,
	"bp_dia":    FieldDiastolic,
	"diet_type": FieldDiet,
	"diet":      FieldDiet,
	"height":    FieldHeight,
	"weight":    FieldWeight,
	"allergens": FieldAllergies,
}

// ListFields are the fields holding ListSeparator-joined values.
var ListFields = map[string]bool{
	FieldConditions: true,
	FieldAllergies:  true,
	FieldLikes:      true,
	FieldDislikes:   true,
}

// JoinList joins the values of a repeated form or JSON field.
func JoinList(values []string) string {
	return strings.Join(values, ListSeparator)
}

// DecodeJSON reads a JSON object into a RawInput. Values may be strings,
// numbers or booleans; numbers keep their literal spelling. List fields also
// take an array of strings. Null and unknown keys are ignored.
func DecodeJSON(r io.Reader) (RawInput, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	raw := RawInput{}
	for _, name := range FieldNames {
		switch v := body[name].(type) {
		case nil:
		case string:
			raw[name] = v
		case json.Number:
			raw[name] = v.String()
		case bool:
			raw[name] = strconv.FormatBool(v)
		case []interface{}:
			if !ListFields[name] {
				return nil, fmt.Errorf("field %s must be a string or a number", name)
			}
			items := make([]string, len(v))
			for i, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("field %s must list strings", name)
				}
				items[i] = s
			}
			raw[name] = JoinList(items)
		default:
			return nil, fmt.Errorf("field %s must be a string or a number", name)
		}
	}
	return raw, nil
}

// FromRecord maps one CSV row onto a RawInput using header for column
// names. Blank cells are left out so defaults apply.
func FromRecord(header, record []string) RawInput {
	known := make(map[string]bool, len(FieldNames))
	for _, name := range FieldNames {
		known[name] = true
	}

	raw := RawInput{}
	for i, col := range header {
		if i >= len(record) {
			break
		}
		name := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		v := strings.TrimSpace(record[i])
		if !known[name] || v == "" {
			continue
		}
		raw[name] = v
	}
	return raw
}
