package xduce

import (
	"errors"
	"iter"
)

// ErrStop ends a reduction early. Runners treat it as success.
var ErrStop = errors.New("xduce: stop")

// Reducer consumes one value. A non-nil error ends the reduction.
type Reducer[T any] func(T) error

// Transducer turns a reducer of Bs into a reducer of As. It describes a
// transformation; nothing runs until a runner feeds it input.
type Transducer[A, B any] func(Reducer[B]) Reducer[A]

func Map[A, B any](f func(A) B) Transducer[A, B] {
	return func(r Reducer[B]) Reducer[A] {
		return func(a A) error {
			return r(f(a))
		}
	}
}

// MapErr is Map for a partial f; its first error ends the reduction.
func MapErr[A, B any](f func(A) (B, error)) Transducer[A, B] {
	return func(r Reducer[B]) Reducer[A] {
		return func(a A) error {
			b, err := f(a)
			if err != nil {
				return err
			}
			return r(b)
		}
	}
}

func Filter[A any](p func(A) bool) Transducer[A, A] {
	return func(r Reducer[A]) Reducer[A] {
		return func(a A) error {
			if !p(a) {
				return nil
			}
			return r(a)
		}
	}
}

// FilterErr is Filter for a partial predicate.
func FilterErr[A any](p func(A) (bool, error)) Transducer[A, A] {
	return func(r Reducer[A]) Reducer[A] {
		return func(a A) error {
			ok, err := p(a)
			if err != nil || !ok {
				return err
			}
			return r(a)
		}
	}
}

func Mapcat[A, B any](f func(A) []B) Transducer[A, B] {
	return func(r Reducer[B]) Reducer[A] {
		return func(a A) error {
			for _, b := range f(a) {
				if err := r(b); err != nil {
					return err
				}
			}
			return nil
		}
	}
}

// MapcatSeq is Mapcat for a lazily produced expansion.
func MapcatSeq[A, B any](f func(A) iter.Seq[B]) Transducer[A, B] {
	return func(r Reducer[B]) Reducer[A] {
		return func(a A) error {
			var err error
			for b := range f(a) {
				if err = r(b); err != nil {
					break
				}
			}
			return err
		}
	}
}

// Take passes the first n values and then stops the reduction. The count
// is per reduction, so a Take stage may be run any number of times.
func Take[A any](n int) Transducer[A, A] {
	return func(r Reducer[A]) Reducer[A] {
		seen := 0
		return func(a A) error {
			if seen >= n {
				return ErrStop
			}
			seen++
			if err := r(a); err != nil {
				return err
			}
			if seen == n {
				return ErrStop
			}
			return nil
		}
	}
}

func Identity[A any]() Transducer[A, A] {
	return func(r Reducer[A]) Reducer[A] { return r }
}

// Comp chains ab then bc. Being function composition it is associative:
// Comp(Comp(a, b), c) and Comp(a, Comp(b, c)) build the same reducer.
func Comp[A, B, C any](ab Transducer[A, B], bc Transducer[B, C]) Transducer[A, C] {
	return func(r Reducer[C]) Reducer[A] {
		return ab(bc(r))
	}
}

func Comp3[A, B, C, D any](ab Transducer[A, B], bc Transducer[B, C], cd Transducer[C, D]) Transducer[A, D] {
	return Comp(Comp(ab, bc), cd)
}

func Comp4[A, B, C, D, E any](ab Transducer[A, B], bc Transducer[B, C], cd Transducer[C, D], de Transducer[D, E]) Transducer[A, E] {
	return Comp(Comp3(ab, bc, cd), de)
}
