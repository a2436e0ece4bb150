package xduce

import (
	"errors"
	"iter"
	"slices"

	"github.com/odb-go/serial/debug"
)

// Each runs t over in, handing every output to fn in input order.
func Each[A, B any](t Transducer[A, B], in iter.Seq[A], fn func(B) error) error {
	r := t(Reducer[B](fn))
	n := 0
	for a := range in {
		n++
		if err := r(a); err != nil {
			if errors.Is(err, ErrStop) {
				break
			}
			return err
		}
	}
	if debug.Pipeline() {
		debug.Logf("xduce: reduced %d inputs", n)
	}
	return nil
}

// Run collects the outputs of t over in.
func Run[A, B any](t Transducer[A, B], in iter.Seq[A]) ([]B, error) {
	var res []B
	err := Each(t, in, func(b B) error {
		res = append(res, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Into is Run over a slice.
func Into[A, B any](t Transducer[A, B], in []A) ([]B, error) {
	return Run(t, slices.Values(in))
}

// MustInto is Into for transducers which cannot fail.
func MustInto[A, B any](t Transducer[A, B], in []A) []B {
	res, err := Into(t, in)
	if err != nil {
		panic(err)
	}
	return res
}

// Seq runs t lazily: inputs are pulled from in only as outputs are
// consumed. A failure is yielded once, with the zero B, and ends the
// sequence.
func Seq[A, B any](t Transducer[A, B], in iter.Seq[A]) iter.Seq2[B, error] {
	return func(yield func(B, error) bool) {
		stopped := false
		r := t(func(b B) error {
			if !yield(b, nil) {
				stopped = true
				return ErrStop
			}
			return nil
		})
		for a := range in {
			err := r(a)
			if stopped {
				return
			}
			if err == nil {
				continue
			}
			if !errors.Is(err, ErrStop) {
				var zero B
				yield(zero, err)
			}
			return
		}
	}
}
