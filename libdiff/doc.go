// Package libdiff compares documents.
//
// Text produces a line diff of two texts with sergi/go-diff. MergePatch
// and Patch wrap evanphx/json-patch: MergePatch computes the RFC 7396
// merge patch between two documents, ApplyMerge and ApplyPatch apply
// merge patches and RFC 6902 patches.
package libdiff
