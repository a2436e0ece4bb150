package parse

import (
	"errors"
	"fmt"

	"github.com/odb-go/serial/ir"
)

var (
	ErrParse    = ir.ErrParse
	ErrTooDeep  = fmt.Errorf("%w: document nesting too deep", ErrParse)
	ErrTrailing = fmt.Errorf("%w: trailing data after document", ErrParse)
	ErrEmpty    = errors.New("empty document")
)
