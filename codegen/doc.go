// Package codegen derives type registries from Go source.
//
// A registry generated from a package describes its exported struct
// types the way the reflection introspector would see them, so documents
// of those types can be decoded by tools that do not link the package.
//
// # Related Packages
//
//   - github.com/odb-go/serial/typeinfo - Registry and its YAML format
//   - github.com/odb-go/serial/cmd/odb-gen - command line front end
package codegen
