package encode

type EncodeOption func(*EncState)

// EncodeWire selects compact output with no whitespace.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

// Indent sets the number of spaces per nesting level of pretty output.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// EscapeHTML escapes <, > and & in strings as encoding/json does.
func EscapeHTML(v bool) EncodeOption {
	return func(es *EncState) { es.escapeHTML = v }
}
