package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/odb-go/serial/ir"

	json "github.com/goccy/go-json"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int
	wire          bool
	escapeHTML    bool

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes node as JSON followed by a newline. By default the output
// is pretty printed with an indent of 2.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		node = ir.Null()
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeString(w, "\n")
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.StringType:
		s, err := quote(node.String, es)
		if err != nil {
			return err
		}
		return writeColored(w, es, ir.StringType, ValueColor, s)
	case ir.NumberType:
		s, err := numberString(node)
		if err != nil {
			return err
		}
		return writeColored(w, es, ir.NumberType, ValueColor, s)
	case ir.BoolType:
		return writeColored(w, es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool))
	case ir.NullType:
		return writeColored(w, es, ir.NullType, ValueColor, "null")
	default:
		return fmt.Errorf("%w: unknown node type %s at %s", ErrEncoding, node.Type, node.Path())
	}
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) != len(node.Values) {
		return fmt.Errorf("%w: object at %s has %d fields and %d values", ErrEncoding, node.Path(), len(node.Fields), len(node.Values))
	}
	if err := writeColored(w, es, ir.ObjectType, SepColor, "{"); err != nil {
		return err
	}
	if len(node.Fields) == 0 {
		return writeColored(w, es, ir.ObjectType, SepColor, "}")
	}
	es.depth++
	for i, field := range node.Fields {
		if i > 0 {
			if err := writeColored(w, es, ir.ObjectType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		key, err := quote(field.String, es)
		if err != nil {
			return err
		}
		if err := writeColored(w, es, ir.ObjectType, FieldColor, key); err != nil {
			return err
		}
		sep := ": "
		if es.wire {
			sep = ":"
		}
		if err := writeColored(w, es, ir.ObjectType, SepColor, sep); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColored(w, es, ir.ObjectType, SepColor, "}")
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeColored(w, es, ir.ArrayType, SepColor, "["); err != nil {
		return err
	}
	if len(node.Values) == 0 {
		return writeColored(w, es, ir.ArrayType, SepColor, "]")
	}
	es.depth++
	for i, v := range node.Values {
		if i > 0 {
			if err := writeColored(w, es, ir.ArrayType, SepColor, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeColored(w, es, ir.ArrayType, SepColor, "]")
}

func numberString(node *ir.Node) (string, error) {
	switch {
	case node.Int64 != nil:
		return strconv.FormatInt(*node.Int64, 10), nil
	case node.Float64 != nil:
		return formatFloat(*node.Float64)
	case node.Number != "":
		return node.Number, nil
	}
	return "", fmt.Errorf("%w: number without value at %s", ErrEncoding, node.Path())
}

// formatFloat follows encoding/json: plain notation for moderate
// magnitudes, exponent notation otherwise.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: unsupported float %v", ErrEncoding, f)
	}
	abs := math.Abs(f)
	mode := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		mode = 'e'
	}
	s := strconv.FormatFloat(f, mode, -1, 64)
	if mode == 'e' {
		// clean up e-09 to e-9
		n := len(s)
		if n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
	}
	return s, nil
}

func quote(s string, es *EncState) (string, error) {
	var (
		d   []byte
		err error
	)
	if es.escapeHTML {
		d, err = json.Marshal(s)
	} else {
		d, err = json.MarshalNoEscape(s)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return string(d), nil
}

func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeColored(w io.Writer, es *EncState, t ir.Type, a ColorAttr, s string) error {
	if es.Color != nil {
		s = es.Color(t, a, s)
	}
	return writeString(w, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
