package libdiff

import (
	"fmt"

	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

// MergePatch returns the merge patch turning from into to. Equal
// documents give an empty object.
func MergePatch(from, to *ir.Node) (*ir.Node, error) {
	a, err := encode.Bytes(from)
	if err != nil {
		return nil, err
	}
	b, err := encode.Bytes(to)
	if err != nil {
		return nil, err
	}
	d, err := jsonpatch.CreateMergePatch(a, b)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return parse.Parse(d)
}

// ApplyMerge applies a merge patch to doc and returns the result.
func ApplyMerge(doc, patch *ir.Node) (*ir.Node, error) {
	d, err := encode.Bytes(doc)
	if err != nil {
		return nil, err
	}
	p, err := encode.Bytes(patch)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, p)
	if err != nil {
		return nil, fmt.Errorf("merge patch at %s: %w", doc.Path(), err)
	}
	return parse.Parse(out)
}

// ApplyPatch applies the operations of a JSON patch, an array of
// {"op": ..., "path": ...} objects, to doc.
func ApplyPatch(doc, patch *ir.Node) (*ir.Node, error) {
	p, err := encode.Bytes(patch)
	if err != nil {
		return nil, err
	}
	ops, err := jsonpatch.DecodePatch(p)
	if err != nil {
		return nil, fmt.Errorf("json patch: %w", err)
	}
	d, err := encode.Bytes(doc)
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(d)
	if err != nil {
		return nil, fmt.Errorf("json patch at %s: %w", doc.Path(), err)
	}
	return parse.Parse(out)
}

// Same reports whether two documents are equal as JSON values, ignoring
// key order.
func Same(a, b *ir.Node) (bool, error) {
	da, err := encode.Bytes(a)
	if err != nil {
		return false, err
	}
	db, err := encode.Bytes(b)
	if err != nil {
		return false, err
	}
	return jsonpatch.Equal(da, db), nil
}
