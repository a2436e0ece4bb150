package parse

type parseOpts struct {
	maxDepth   int
	allowEmpty bool
}

type ParseOption func(*parseOpts)

// MaxDepth bounds the nesting of objects and arrays. Zero means the
// default of 512.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) { o.maxDepth = n }
}

// AllowEmpty makes Parse return a nil node instead of ErrEmpty on
// whitespace-only input.
func AllowEmpty(v bool) ParseOption {
	return func(o *parseOpts) { o.allowEmpty = v }
}
