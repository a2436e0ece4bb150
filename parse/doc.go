// Package parse provides JSON parsing into ir documents.
//
// Tokenizing is delegated to github.com/goccy/go-json; this package only
// builds the ir tree, keeping object key order and sorting numbers into
// Int64, Float64 or the Number literal fallback.
//
//	doc, err := parse.Parse([]byte(`{"x": 1.5, "y": 2.0}`))
package parse
