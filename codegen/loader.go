package codegen

import (
	"errors"
	"fmt"
	"go/types"
	"sync"

	"golang.org/x/tools/go/packages"
)

// PackageLoader loads and caches Go packages.
type PackageLoader struct {
	cache map[string]*packages.Package
	mu    sync.RWMutex
	dir   string
}

// NewPackageLoader creates a PackageLoader resolving patterns relative
// to dir, or the working directory when dir is empty.
func NewPackageLoader(dir string) *PackageLoader {
	return &PackageLoader{
		cache: make(map[string]*packages.Package),
		dir:   dir,
	}
}

// Load loads the packages matching pattern.
func (l *PackageLoader) Load(pattern string) ([]*packages.Package, error) {
	l.mu.RLock()
	if pkg, ok := l.cache[pattern]; ok {
		l.mu.RUnlock()
		return []*packages.Package{pkg}, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedImports,
		Dir:  l.dir,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load %q: %w", pattern, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages match %q", pattern)
	}
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		l.cache[pkg.PkgPath] = pkg
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("loading %q: %w", pattern, errors.Join(errs...))
	}
	return pkgs, nil
}

// FindStructType finds a struct type definition in a loaded package.
func FindStructType(pkg *types.Package, typeName string) (*types.TypeName, *types.Struct, error) {
	obj := pkg.Scope().Lookup(typeName)
	if obj == nil {
		return nil, nil, fmt.Errorf("type %q not found in package %q", typeName, pkg.Path())
	}
	tn, ok := obj.(*types.TypeName)
	if !ok {
		return nil, nil, fmt.Errorf("%q is not a type name", typeName)
	}
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return nil, nil, fmt.Errorf("%q is not a struct", typeName)
	}
	return tn, st, nil
}
