package typeinfo

import (
	"fmt"
	"reflect"
	"strings"
)

// TagKey is the struct tag consulted by the reflection backend.
const TagKey = "odb"

// FieldTag holds the options of an `odb:"..."` struct tag.
type FieldTag struct {
	// Field renames the document key.
	Field     string
	Transient bool
	Static    bool
}

// ParseStructTag parses a struct tag string and returns a map of key-value pairs.
// Handles comma-separated values: `odb:"key1=value1,key2=value2,flag"`
// Supports quoted values with spaces: `odb:"field='value with spaces'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}

	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false

	for i := 0; i < len(tag); i++ {
		char := tag[i]
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inSingleQuote && !inDoubleQuote:
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag: unterminated quote in %q", tag)
	}
	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	for _, part := range parts {
		idx := strings.Index(part, "=")
		if idx < 0 {
			// boolean flag
			result[part] = ""
			continue
		}
		key := strings.TrimSpace(part[:idx])
		if key == "" {
			return nil, fmt.Errorf("invalid tag: empty key in %q", part)
		}
		result[key] = unquoteValue(strings.TrimSpace(part[idx+1:]))
	}
	return result, nil
}

func unquoteValue(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// GetFieldTag reads the odb tag of a struct field. A malformed tag is a
// programming error and panics.
func GetFieldTag(f reflect.StructField) FieldTag {
	parsed, err := ParseStructTag(f.Tag.Get(TagKey))
	if err != nil {
		panic(fmt.Sprintf("typeinfo: field %s: %v", f.Name, err))
	}
	return FieldTagFrom(parsed)
}

// FieldTagFrom interprets a tag parsed by ParseStructTag.
func FieldTagFrom(parsed map[string]string) FieldTag {
	res := FieldTag{}
	for k, v := range parsed {
		switch k {
		case "-", "transient":
			res.Transient = true
		case "static":
			res.Static = true
		case "field":
			res.Field = v
		}
	}
	return res
}
