package parse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/odb-go/serial/ir"

	json "github.com/goccy/go-json"
)

const defaultMaxDepth = 512

// Parse parses a single JSON document. Object key order is kept.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	return ParseReader(bytes.NewReader(d), opts...)
}

func ParseReader(r io.Reader, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{maxDepth: defaultMaxDepth}
	for _, f := range opts {
		f(pOpts)
	}
	if pOpts.maxDepth <= 0 {
		pOpts.maxDepth = defaultMaxDepth
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		if pOpts.allowEmpty {
			return nil, nil
		}
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	res, err := parseValue(dec, tok, 0, pOpts)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailing
	}
	return res, nil
}

func parseValue(dec *json.Decoder, tok json.Token, depth int, opts *parseOpts) (*ir.Node, error) {
	switch x := tok.(type) {
	case json.Delim:
		if depth >= opts.maxDepth {
			return nil, ErrTooDeep
		}
		switch x {
		case '{':
			return parseObject(dec, depth+1, opts)
		case '[':
			return parseArray(dec, depth+1, opts)
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrParse, rune(x))
		}
	case string:
		return ir.FromString(x), nil
	case bool:
		return ir.FromBool(x), nil
	case nil:
		return ir.Null(), nil
	case json.Number:
		return number(string(x)), nil
	case float64:
		return ir.FromFloat(x), nil
	default:
		return nil, fmt.Errorf("%w: unexpected token %T", ErrParse, tok)
	}
}

func parseObject(dec *json.Decoder, depth int, opts *parseOpts) (*ir.Node, error) {
	var kvs []ir.KeyVal
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return ir.FromKeyVals(kvs), nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key must be a string, got %T", ErrParse, tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: value for %q: %w", ErrParse, key, err)
		}
		val, err := parseValue(dec, tok, depth, opts)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: key, Val: val})
	}
}

func parseArray(dec *json.Decoder, depth int, opts *parseOpts) (*ir.Node, error) {
	vals := []*ir.Node{}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return ir.FromSlice(vals), nil
		}
		val, err := parseValue(dec, tok, depth, opts)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
}

// number keeps integer literals outside the int64 range verbatim.
func number(lit string) *ir.Node {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return ir.FromInt(i)
	}
	if !strings.ContainsAny(lit, ".eE") {
		return ir.FromNumber(lit)
	}
	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return ir.FromFloat(f)
	}
	return ir.FromNumber(lit)
}
