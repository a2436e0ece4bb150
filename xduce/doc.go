// Package xduce provides transducers: composable transformation stages
// which are independent of the sequence they are eventually run over.
//
//	toNames := xduce.Comp(
//	    xduce.Filter(func(f typeinfo.Field) bool { return typeinfo.Valid(f) }),
//	    xduce.Map(func(f typeinfo.Field) string { return f.Name }),
//	)
//	names, err := xduce.Into(toNames, fields)
//
// Runs are single pass and preserve input order. A value dropped by a
// Filter never reaches later stages. Stages may fail, which ends the run
// with that error, or return ErrStop, which ends it successfully.
package xduce
